// internal/advisor/schemas.go
package advisor

// JSON Schemas the model responses must satisfy before decoding. Shapes
// mirror the response contracts in prompts.go.

const analysisSchema = `{
	"type": "object",
	"required": ["score", "status", "checks", "breakdown", "feedback"],
	"properties": {
		"score": {"type": "number"},
		"status": {"type": "string", "enum": ["READY", "NOT_READY"]},
		"checks": {
			"type": "object",
			"required": ["pageLength", "formatPreserved", "companyTargeted"],
			"properties": {
				"pageLength": {"type": "boolean"},
				"formatPreserved": {"type": "boolean"},
				"companyTargeted": {"type": "boolean"}
			}
		},
		"breakdown": {
			"type": "object",
			"required": ["skillsMatch", "responsibilityMatch", "keywordMatch", "experienceFit", "targeting"],
			"properties": {
				"skillsMatch": {"type": "number"},
				"responsibilityMatch": {"type": "number"},
				"keywordMatch": {"type": "number"},
				"experienceFit": {"type": "number"},
				"targeting": {"type": "number"}
			}
		},
		"feedback": {
			"type": "object",
			"required": ["missingSkills", "suggestions", "atsNotes"],
			"properties": {
				"missingSkills": {"type": "array", "items": {"type": "string"}},
				"suggestions": {"type": "array", "items": {"type": "string"}},
				"atsNotes": {"type": "array", "items": {"type": "string"}}
			}
		}
	}
}`

const practiceQuestionSchema = `{
	"type": "object",
	"required": ["question", "category", "difficulty"],
	"properties": {
		"question": {"type": "string"},
		"category": {"type": "string"},
		"difficulty": {"type": "string", "enum": ["Easy", "Medium", "Hard"]}
	}
}`

const practiceFeedbackSchema = `{
	"type": "object",
	"required": ["score", "strengths", "improvements", "sampleAnswer"],
	"properties": {
		"score": {"type": "number", "minimum": 0, "maximum": 100},
		"strengths": {"type": "array", "items": {"type": "string"}},
		"improvements": {"type": "array", "items": {"type": "string"}},
		"sampleAnswer": {"type": "string"}
	}
}`

const profileSchema = `{
	"type": "object",
	"required": ["name", "email", "profile"],
	"properties": {
		"name": {"type": "string"},
		"email": {"type": "string"},
		"profile": {
			"type": "object",
			"required": ["headline", "summary", "skills"],
			"properties": {
				"headline": {"type": "string"},
				"summary": {"type": "string"},
				"skills": {"type": "array", "items": {"type": "string"}},
				"experienceYears": {"type": "number"}
			}
		}
	}
}`

const supportSchema = `{
	"type": "object",
	"required": ["resume_feedback", "interview_preparation", "errors"],
	"properties": {
		"resume_feedback": {
			"type": "object",
			"required": ["suggestions", "editable_output"],
			"properties": {
				"suggestions": {
					"type": "array",
					"items": {
						"type": "object",
						"required": ["text", "section", "severity"],
						"properties": {
							"text": {"type": "string"},
							"section": {"type": "string"},
							"severity": {"type": "string", "enum": ["low", "medium", "high"]}
						}
					}
				},
				"editable_output": {"type": "string"}
			}
		},
		"interview_preparation": {
			"type": "object",
			"required": ["role_specific_questions", "feedback"],
			"properties": {
				"role_specific_questions": {
					"type": "array",
					"items": {
						"type": "object",
						"required": ["question", "difficulty"],
						"properties": {
							"question": {"type": "string"},
							"topic": {"type": "string"},
							"difficulty": {"type": "string", "enum": ["easy", "medium", "hard"]}
						}
					}
				},
				"feedback": {
					"type": "array",
					"items": {
						"type": "object",
						"required": ["text", "type"],
						"properties": {
							"text": {"type": "string"},
							"type": {"type": "string", "enum": ["general", "role-specific"]}
						}
					}
				}
			}
		},
		"errors": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["message"],
				"properties": {
					"message": {"type": "string"}
				}
			}
		}
	}
}`
