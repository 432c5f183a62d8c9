package orchestrator

import "time"

// Source identifies where a plan came from.
type Source string

const (
	SourceGenerated Source = "generated"
	SourceTemplate  Source = "template"
)

// GoalRequest carries a free-text goal plus optional planning hints.
type GoalRequest struct {
	Goal                string   `json:"goal_text"`
	Timeline            string   `json:"timeline,omitempty"`
	Budget              string   `json:"budget,omitempty"`
	Departments         []string `json:"available_departments,omitempty"`
	SpecialRequirements string   `json:"special_requirements,omitempty"`
}

// TaskSpec is one step in a project plan. Ordinals are 1-based and
// sequential; DependsOn references an earlier ordinal or is nil.
type TaskSpec struct {
	Ordinal           int      `json:"id"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Department        string   `json:"department"`
	SuggestedAssignee string   `json:"suggested_assignee,omitempty"`
	Priority          string   `json:"priority"`
	EstimatedDays     int      `json:"estimated_days"`
	DependsOn         *int     `json:"depends_on"`
	Deliverables      []string `json:"deliverables"`
}

// ProjectPlan is a goal decomposed into ordered tasks. Produced fresh
// per call and never mutated after construction.
type ProjectPlan struct {
	ID                  string     `json:"id"`
	Title               string     `json:"project_title"`
	Description         string     `json:"project_description"`
	EstimatedDuration   string     `json:"estimated_duration"`
	DurationDays        int        `json:"duration_days,omitempty"`
	Tasks               []TaskSpec `json:"tasks"`
	SuccessCriteria     []string   `json:"success_criteria"`
	Risks               []string   `json:"potential_risks"`
	RecommendedTimeline string     `json:"recommended_timeline"`
	Source              Source     `json:"source,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}
