package services

import (
	"encoding/json"
	"fmt"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildExtractionPrompt creates the prompt that turns raw CV text into the
// structured candidate profile.
func (pb *PromptBuilder) BuildExtractionPrompt(rawText string) string {
	return fmt.Sprintf(`You are an expert in recruitment (ATS).
Extract structured information from the plain text of the CV below.

IMPORTANT: Extract all information in the SAME LANGUAGE as the CV (if the CV is in French, extract in French; if in English, extract in English).

For "year_experience", calculate the total duration between the first experience and today.

For "experiences", extract:
- Role, company name, duration, period, contract type, work type
- A concise summary (2-3 sentences maximum, ~50 words) highlighting the most impactful contributions and key technologies used. Focus on outcomes and scope rather than listing every task.

Example of a good summary:
"Led backend development for B2B payment solutions serving 50+ Swedish e-commerce clients. Architected Payero.se integration with Swish mobile payments and accounting APIs (Fortnox, Visma). Built AI-powered customer support automation using Langchain and deployed microservices with Docker."

For "diploma_ranking", use the rank of the highest diploma: PhD=8, Master/Engineer=5, Bachelor=3, BTS/DUT=2, High School Diploma=1. Use 0 when unknown.

MANDATORY: Return ONLY a JSON object with exactly these fields, without any text or comments around:
{
  "name": "<candidate name>",
  "website": "<candidate website>",
  "phone_number": "<candidate phone number>",
  "email": "<candidate email>",
  "description": "<candidate profile description>",
  "skills": ["<technical and soft skills>"],
  "diploma": "<highest diploma, e.g. Master, Bachelor, PhD>",
  "diploma_ranking": <integer>,
  "year_experience": <integer>,
  "experiences": ["<one summary per experience>"],
  "languages": ["<spoken languages>"],
  "certifications": ["<certifications>"]
}

Raw CV text:
%s`, rawText)
}

// BuildAdjustmentPrompt creates the recruiter-persona prompt that audits the
// deterministic scores. All inputs arrive pre-serialized as JSON.
func (pb *PromptBuilder) BuildAdjustmentPrompt(jobRequirements, candidateData, deterministicScores, weights string) string {
	return fmt.Sprintf(`### ROLE
You are a Technical Recruitment Expert (Senior Talent Acquisition). Your role is to audit the raw scores generated by an algorithm and add human and semantic nuance to produce the final matching score.

### INPUT DATA
1. JOB CRITERIA: %s
2. DATA EXTRACTED FROM THE CV: %s
3. DETERMINISTIC SCORES: %s (Based on strict matching)

### ADJUSTMENT INSTRUCTIONS
- **Experience**: Only count experience in the same industry/domain as the job offer; exclude or heavily discount out-of-domain experience and explain the exclusion in the score comments. If the candidate has fewer years of experience than required but has worked for prestigious companies or on identical technologies, slightly increase the score. If the candidate has more years of experience, cap the score at 100 but mention it as a strength.
- **Skills**: Identify synonyms (e.g. 'React' vs 'ReactJS') or related technologies that the deterministic algorithm may have missed and adjust the score accordingly.
- **Degree**: Assess the relevance of the field of study to the position, not just its rank.

### ADDITIONAL CALCULATIONS
- **Language score (0-100):** Based on the requirements of the job offer (e.g. fluent English) and even the language of the CV.
- **Job fit (0-100):** Assesses whether past tasks match the job description.

### CRITERIA FOR STRENGTHS
- Years of experience > required.
- Degree > required level or prestigious field.
- Relevant certifications.
- Strong fit between past assignments and the future position.
- Any other relevant insight you found.

### WEIGHTS
These are the weights used for the final score computation:
%s

### FINAL TASK
Analyze the data, then return ONLY a JSON object with exactly these fields, without any text around:
{
  "experience": <0-100, deterministic experience score adjusted by you>,
  "skills": <0-100, deterministic skill score adjusted by you>,
  "education": <0-100, deterministic diploma score adjusted by you>,
  "languages": <0-100, given by you>,
  "job_fit": <0-100, given by you>,
  "score_comments": ["<for each adjusted score, 2 lines max on why you adjusted it>"],
  "strengths": ["<strengths: bonus experience, high qualifications, certificates, etc.>"],
  "weaknesses": ["<points to watch out for>"],
  "missing_skills": ["<key skills lacking in relation to the offer>"],
  "summary": "<overall summary and final opinion of the recruiter>"
}`, jobRequirements, candidateData, deterministicScores, weights)
}

func parseJSONResponse(response string, target interface{}) error {
	// The model may wrap the JSON in markdown or commentary.
	jsonStr := extractJSON(response)

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return nil
}

// extractJSON tries to extract JSON from text that might contain markdown or
// other formatting around it.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}
