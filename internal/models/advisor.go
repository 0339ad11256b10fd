// internal/models/advisor.go
package models

// AnalysisChecks are the pass/fail gates of a resume analysis.
type AnalysisChecks struct {
	PageLength      bool `json:"pageLength"`
	FormatPreserved bool `json:"formatPreserved"`
	CompanyTargeted bool `json:"companyTargeted"`
}

// AnalysisBreakdown is the weighted score decomposition: skills 40%,
// responsibilities 25%, keywords 15%, experience 10%, targeting 10%.
type AnalysisBreakdown struct {
	SkillsMatch         float64 `json:"skillsMatch"`
	ResponsibilityMatch float64 `json:"responsibilityMatch"`
	KeywordMatch        float64 `json:"keywordMatch"`
	ExperienceFit       float64 `json:"experienceFit"`
	Targeting           float64 `json:"targeting"`
}

// AnalysisFeedback carries the actionable notes of a resume analysis.
type AnalysisFeedback struct {
	MissingSkills []string `json:"missingSkills"`
	Suggestions   []string `json:"suggestions"`
	ATSNotes      []string `json:"atsNotes"`
}

// AnalysisResult is the advisory verdict for a resume against one listing.
type AnalysisResult struct {
	Score     float64           `json:"score"`
	Status    string            `json:"status"` // READY or NOT_READY
	Checks    AnalysisChecks    `json:"checks"`
	Breakdown AnalysisBreakdown `json:"breakdown"`
	Feedback  AnalysisFeedback  `json:"feedback"`
}

// PracticeSession is one generated interview question.
type PracticeSession struct {
	Question   string `json:"question"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"` // Easy, Medium, Hard
}

// PracticeFeedback is the evaluation of a practice answer.
type PracticeFeedback struct {
	Score        float64  `json:"score"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	SampleAnswer string   `json:"sampleAnswer"`
}

// ExtractedProfile is the sign-up profile parsed from a resume.
type ExtractedProfile struct {
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	Profile UserProfile `json:"profile"`
}

// ResumeSuggestion is one targeted resume improvement.
type ResumeSuggestion struct {
	Text     string `json:"text"`
	Section  string `json:"section"`
	Severity string `json:"severity"` // low, medium, high
}

// ResumeFeedback groups resume suggestions with a rewritten section.
type ResumeFeedback struct {
	Suggestions    []ResumeSuggestion `json:"suggestions"`
	EditableOutput string             `json:"editable_output"`
}

// RoleQuestion is one role-specific interview question.
type RoleQuestion struct {
	Question   string `json:"question"`
	Topic      string `json:"topic,omitempty"`
	Difficulty string `json:"difficulty"` // easy, medium, hard
}

// PrepFeedback is one preparation strategy note.
type PrepFeedback struct {
	Text string `json:"text"`
	Type string `json:"type"` // general, role-specific
}

// InterviewPreparation bundles questions and strategy notes.
type InterviewPreparation struct {
	RoleSpecificQuestions []RoleQuestion `json:"role_specific_questions"`
	Feedback              []PrepFeedback `json:"feedback"`
}

// SupportError reports a missing input noticed by the support agent.
type SupportError struct {
	Message string `json:"message"`
}

// SupportResponse is the combined career support payload. Questions are
// sorted by topic, then by ascending difficulty within each topic.
type SupportResponse struct {
	ResumeFeedback       ResumeFeedback       `json:"resume_feedback"`
	InterviewPreparation InterviewPreparation `json:"interview_preparation"`
	Errors               []SupportError       `json:"errors"`
}
