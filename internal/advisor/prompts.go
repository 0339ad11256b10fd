// internal/advisor/prompts.go
package advisor

import "fmt"

func analyzePrompt(resume, coverLetter, jobDescription, company, title string) string {
	coverNote := ""
	coverSection := ""
	targetingNote := ""
	if coverLetter != "" {
		coverNote = "and cover letter "
		coverSection = fmt.Sprintf("\nCover Letter:\n%s\n", coverLetter)
		targetingNote = "Use the cover letter to evaluate the Company Targeting score."
	}

	return fmt.Sprintf(`As a Resume AI Agent, evaluate the resume %sbelow against the job description for %s at %s.

Resume:
%s
%s
Job Description: %s

Adhere strictly to these logic rules:
1. Overall Alignment Score is weighted: Skills Match (40%%), Role Responsibility (25%%), Keyword/ATS (15%%), Experience (10%%), Company Targeting (10%%).
   %s
2. Pass conditions: Score >= 70%%, <= 1 page (assume text length > 3000 chars is > 1 page), Company addressed.
3. "status" is "READY" when all pass conditions hold, otherwise "NOT_READY".

Respond with strict JSON only, no prose, matching this shape:
{"score": number, "status": string, "checks": {"pageLength": bool, "formatPreserved": bool, "companyTargeted": bool}, "breakdown": {"skillsMatch": number, "responsibilityMatch": number, "keywordMatch": number, "experienceFit": number, "targeting": number}, "feedback": {"missingSkills": [string], "suggestions": [string], "atsNotes": [string]}}`,
		coverNote, title, company, resume, coverSection, jobDescription, targetingNote)
}

func summarizePrompt(description string) string {
	return fmt.Sprintf("Summarize this job description in 3 concise bullet points for a quick scan:\n\n%s", description)
}

func practiceQuestionPrompt(userContext string) string {
	scope := "for a Software Engineer role"
	if userContext != "" {
		scope = fmt.Sprintf("related to: %s", userContext)
	}
	return fmt.Sprintf(`Generate a challenging technical interview question %s.
Respond with strict JSON only: {"question": string, "category": string, "difficulty": string} where difficulty is one of Easy, Medium, Hard.`, scope)
}

func evaluateAnswerPrompt(question, answer string) string {
	return fmt.Sprintf(`Evaluate the following interview answer for the question: %q

Answer: %q

Respond with strict JSON only: {"score": number (0-100), "strengths": [string], "improvements": [string], "sampleAnswer": string}`,
		question, answer)
}

func extractProfilePrompt(resume string) string {
	return fmt.Sprintf(`Extract the candidate's basic profile information from this resume.
Focus on name, email, a short professional headline, a summary of their career, and their top technical/soft skills.

Resume:
%s

Respond with strict JSON only: {"name": string, "email": string, "profile": {"headline": string, "summary": string, "skills": [string], "experienceYears": number}}`,
		resume)
}

func supportPrompt(resumeText, targetRole string) string {
	if resumeText == "" {
		resumeText = "NOT PROVIDED"
	}
	if targetRole == "" {
		targetRole = "NOT PROVIDED"
	}
	return fmt.Sprintf(`As a Career Support Agent, provide resume feedback and interview preparation guidance based on the following inputs.

Resume Text: %s
Target Role: %s

Instructions:
1. If resume text or role is missing, indicate it in the "errors" array.
2. Provide 3-5 specific suggestions for the resume.
3. Generate a suggested "editable_output" which is a rewritten, improved version of the summary or core experience section of the resume.
4. Provide 5-8 role-specific interview questions.
5. Group questions by "topic" and sort them by difficulty (easy < medium < hard).
6. Provide feedback on general and role-specific preparation strategies.

Respond with strict JSON only, matching this shape:
{"resume_feedback": {"suggestions": [{"text": string, "section": string, "severity": "low"|"medium"|"high"}], "editable_output": string}, "interview_preparation": {"role_specific_questions": [{"question": string, "topic": string, "difficulty": "easy"|"medium"|"hard"}], "feedback": [{"text": string, "type": "general"|"role-specific"}]}, "errors": [{"message": string}]}`,
		resumeText, targetRole)
}
