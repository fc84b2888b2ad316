package service

import "fmt"

const maxResumeChars = 4000

const defaultJobDescription = "General software engineering position"

// buildPrompt renders the fixed section-header skeleton the response
// parser expects. resumeText is truncated to maxResumeChars before
// interpolation.
func buildPrompt(resumeText string, jobDescription *string) string {
	if len(resumeText) > maxResumeChars {
		resumeText = resumeText[:maxResumeChars]
	}

	jd := defaultJobDescription
	if jobDescription != nil && *jobDescription != "" {
		jd = *jobDescription
	}

	return fmt.Sprintf(`You are an expert HR recruiter analyzing a candidate's resume.
RESUME CONTENT: %s
JOB REQUIREMENTS: %s
SKILLS: ...
EXPERIENCE: <number>
EDUCATION: ...
CULTURAL_FIT: ...
MATCH_SCORE: <0-100>
ANALYSIS: ...
RECOMMENDATION: STRONG_HIRE | HIRE | MAYBE | NO_HIRE`, resumeText, jd)
}
