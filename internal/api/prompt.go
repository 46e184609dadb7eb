package api

import (
	"fmt"
	"strings"
)

// taskPromptTemplate asks the generator for role-scoped numbered task
// lists. The format requested here is what the parser chain handles
// best, but nothing downstream assumes the generator complied.
const taskPromptTemplate = `You are an experienced project architect. Break the following project down into specific, actionable tasks for each assigned role.

PROJECT: %s
ASSIGNED ROLES: %s

GUIDELINES:
1. Create 4-5 specific, actionable tasks for each assigned role
2. Name concrete technologies and frameworks where relevant
3. Consider integration points between roles
4. Each task should be 15-25 words
5. Only create tasks for the roles listed in ASSIGNED ROLES

OUTPUT FORMAT (use EXACTLY this format):

Frontend Developer:
1. [First specific actionable task]
2. [Second specific actionable task]
3. [Third specific actionable task]

Backend Developer:
1. [First specific actionable task]
2. [Second specific actionable task]
3. [Third specific actionable task]

Do not add commentary before or after the breakdown.`

// BuildTaskPrompt renders the generation prompt for a project
// description and its selected roles.
func BuildTaskPrompt(description string, roles []string) string {
	return fmt.Sprintf(taskPromptTemplate, description, strings.Join(roles, ", "))
}
