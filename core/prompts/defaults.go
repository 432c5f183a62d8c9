package prompts

// Agent types and prompt names used across the system. Every
// combination the engines resolve has a compiled-in default below, so
// resolution can never fail.
const (
	AgentCoach        = "coach"
	AgentOrchestrator = "orchestrator"

	PromptSystem       = "system"
	PromptUserTemplate = "user_template"
)

const coachSystemPrompt = `You are a performance coach for a small business team.
You write one short, warm, direct motivational message per request.

Rules:
- Reply in the employee's language (Arabic or English, matching the input).
- At most 2 sentences. No greetings, no signatures.
- Name one concrete next step tied to the employee's department.
- Never mention targets, drift values, or performance tiers verbatim.
- Tone by performance level: good = encourage momentum,
  needs_improvement = supportive push, critical = urgent but respectful.`

const coachUserTemplate = `Employee: {name}
Role: {role}
Department: {department}
Performance level: {performance_level}
Recent activity summary: {summary}
Current time: {current_time}

Write the coaching message now.`

const orchestratorSystemPrompt = `You are a project planner that decomposes a business goal
into an executable task breakdown.

Respond with a single JSON object and nothing else, using exactly this shape:
{
  "project_title": string,
  "project_description": string,
  "estimated_duration": string,
  "tasks": [
    {
      "id": number,
      "title": string,
      "description": string,
      "department": string,
      "suggested_assignee": string or null,
      "priority": "high" | "medium" | "low",
      "estimated_days": number,
      "depends_on": number or null,
      "deliverables": [string]
    }
  ],
  "success_criteria": [string],
  "potential_risks": [string],
  "recommended_timeline": string
}

Rules:
- 3 to 8 tasks, ordered, ids starting at 1.
- depends_on references an earlier task id, or null.
- Assign each task to one of the available departments.`

const orchestratorUserTemplate = `Goal: {goal_text}
Timeline hint: {timeline}
Available departments: {available_departments}
Budget hint: {budget}
Special requirements: {special_requirements}

Produce the project plan JSON now.`

var builtins = map[string]map[string]string{
	AgentCoach: {
		PromptSystem:       coachSystemPrompt,
		PromptUserTemplate: coachUserTemplate,
	},
	AgentOrchestrator: {
		PromptSystem:       orchestratorSystemPrompt,
		PromptUserTemplate: orchestratorUserTemplate,
	},
}

// Variable descriptions per (agent, prompt), surfaced when seeding the
// store so non-technical operators know what they can reference.
var builtinVariables = map[string]map[string]map[string]string{
	AgentCoach: {
		PromptUserTemplate: {
			"name":              "employee display name",
			"role":              "employee role",
			"department":        "employee department",
			"performance_level": "computed performance tier",
			"summary":           "free-text activity summary",
			"current_time":      "HH:MM in the configured timezone",
		},
	},
	AgentOrchestrator: {
		PromptUserTemplate: {
			"goal_text":             "free-text goal to decompose",
			"timeline":              "requested timeline, or unspecified",
			"available_departments": "departments tasks may be assigned to",
			"budget":                "budget hint, or unspecified",
			"special_requirements":  "extra constraints, or none",
		},
	},
}

// Default returns the compiled-in template body for
// (agentType, promptName). The second return is false for unknown
// combinations.
func Default(agentType, promptName string) (string, bool) {
	agent, ok := builtins[agentType]
	if !ok {
		return "", false
	}
	body, ok := agent[promptName]
	return body, ok
}

// DefaultVariables returns the variable descriptions for
// (agentType, promptName), or nil.
func DefaultVariables(agentType, promptName string) map[string]string {
	agent, ok := builtinVariables[agentType]
	if !ok {
		return nil
	}
	return agent[promptName]
}
