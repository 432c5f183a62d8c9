package orchestrator

import (
	"fmt"
	"strings"
)

// projectTemplate is a canned task breakdown used when generation is
// unavailable or returns unparseable output. Templates have no external
// dependencies, so this path is unconditionally correct.
type projectTemplate struct {
	id    string
	title string
	tasks []templateTask
}

type templateTask struct {
	title      string
	department string
	days       int
}

// keywordRule maps goal-text keywords to a canned template. Rules are
// evaluated top to bottom; first match wins. Keywords cover both the
// Arabic and English phrasing the workforce uses.
type keywordRule struct {
	keywords []string
	template *projectTemplate
}

var websiteLaunchTemplate = &projectTemplate{
	id:    "website_launch",
	title: "Website launch",
	tasks: []templateTask{
		{title: "Requirements and scope", department: "tech", days: 2},
		{title: "Design and wireframes", department: "tech", days: 4},
		{title: "Build and integration", department: "tech", days: 7},
		{title: "Content preparation", department: "marketing", days: 3},
		{title: "QA and launch", department: "tech", days: 2},
	},
}

var marketingCampaignTemplate = &projectTemplate{
	id:    "marketing_campaign",
	title: "Marketing campaign",
	tasks: []templateTask{
		{title: "Audience and message definition", department: "marketing", days: 2},
		{title: "Creative production", department: "marketing", days: 4},
		{title: "Channel setup and launch", department: "marketing", days: 3},
		{title: "Monitoring and optimization", department: "marketing", days: 5},
	},
}

var salesIncreaseTemplate = &projectTemplate{
	id:    "sales_increase",
	title: "Sales increase initiative",
	tasks: []templateTask{
		{title: "Pipeline and funnel review", department: "sales", days: 2},
		{title: "Offer and pricing adjustments", department: "sales", days: 3},
		{title: "Outreach push", department: "sales", days: 7},
		{title: "Results review", department: "sales", days: 2},
	},
}

var genericTemplate = &projectTemplate{
	id:    "generic",
	title: "New project",
	tasks: []templateTask{
		{title: "Analyze the goal", department: "general", days: 2},
		{title: "Draft the plan", department: "general", days: 3},
		{title: "Execute", department: "general", days: 7},
		{title: "Review", department: "general", days: 2},
	},
}

// Fixed priority order: website terms beat campaign terms beat sales
// terms.
var keywordRules = []keywordRule{
	{keywords: []string{"موقع", "website", "web"}, template: websiteLaunchTemplate},
	{keywords: []string{"حملة", "campaign", "تسويق", "marketing"}, template: marketingCampaignTemplate},
	{keywords: []string{"مبيعات", "sales", "زيادة", "increase"}, template: salesIncreaseTemplate},
}

// classifyGoal selects the canned template for a goal text. No match
// selects the generic four-step template.
func classifyGoal(goal string) *projectTemplate {
	lower := strings.ToLower(goal)
	for _, rule := range keywordRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.template
			}
		}
	}
	return genericTemplate
}

// materialize expands a canned template into a full plan: sequential
// ordinals, each task depending on the one before it, single-item
// deliverable lists, duration summed from the per-task estimates.
func (t *projectTemplate) materialize(goal string) *ProjectPlan {
	tasks := make([]TaskSpec, 0, len(t.tasks))
	totalDays := 0

	for i, task := range t.tasks {
		ordinal := i + 1
		spec := TaskSpec{
			Ordinal:       ordinal,
			Title:         task.title,
			Description:   fmt.Sprintf("Carry out: %s", task.title),
			Department:    task.department,
			Priority:      "medium",
			EstimatedDays: task.days,
			Deliverables:  []string{fmt.Sprintf("%s completed", task.title)},
		}
		if i > 0 {
			prev := ordinal - 1
			spec.DependsOn = &prev
		}
		tasks = append(tasks, spec)
		totalDays += task.days
	}

	duration := fmt.Sprintf("%d days", totalDays)

	return &ProjectPlan{
		Title:               t.title,
		Description:         fmt.Sprintf("%s plan for goal: %s", t.title, goal),
		EstimatedDuration:   duration,
		DurationDays:        totalDays,
		Tasks:               tasks,
		SuccessCriteria:     []string{"All tasks completed"},
		Risks:               []string{"Unclear requirements"},
		RecommendedTimeline: duration,
		Source:              SourceTemplate,
	}
}
