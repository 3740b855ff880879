package models

// ── Profile ─────────────────────────────────────────────
//
// All scores are raw float64 percentages in [0,100]. Rounding is left to
// whoever renders them.

type Profile struct {
	LearningStyle       LearningStyle        `json:"learningStyle"`
	CognitiveProfile    CognitiveProfile     `json:"cognitiveProfile"`
	ConfidenceAlignment float64              `json:"confidenceAlignment"`
	SubjectPerformance  []SubjectPerformance `json:"subjectPerformance"`
	TimeAnalysis        TimeAnalysis         `json:"timeAnalysis"`
	MistakePatterns     MistakePatterns      `json:"mistakePatterns"`
	PerformanceMetrics  PerformanceMetrics   `json:"performanceMetrics"`
	ComparativeAnalysis ComparativeAnalysis  `json:"comparativeAnalysis"`
	AbilityEstimate     int                  `json:"abilityEstimate"`
	Insights            Insights             `json:"insights"`
}

// LearningStyle holds four independently accumulated axes. They are not
// normalised and need not sum to 100.
type LearningStyle struct {
	Visual      float64 `json:"visual"`
	Auditory    float64 `json:"auditory"`
	Reading     float64 `json:"reading"`
	Kinesthetic float64 `json:"kinesthetic"`
}

type CognitiveProfile struct {
	Skills     map[string]float64 `json:"skills"`
	SkillOrder []string           `json:"skillOrder"`
	Overall    float64            `json:"overall"`
	Alignment  float64            `json:"alignment"`
}

type SubjectPerformance struct {
	Subject            string  `json:"subject"`
	Accuracy           float64 `json:"accuracy"`
	ConfidenceAccuracy float64 `json:"confidenceAccuracy"`
	QuestionCount      int     `json:"questionCount"`
	CorrectCount       int     `json:"correctCount"`
}

type TimeAnalysis struct {
	AverageTimePerQuestion  float64 `json:"averageTimePerQuestion"`
	ExpectedTimePerQuestion float64 `json:"expectedTimePerQuestion"`
	FastestQuestion         float64 `json:"fastestQuestion"`
	SlowestQuestion         float64 `json:"slowestQuestion"`
	RushingIndicator        bool    `json:"rushingIndicator"`
	OptimalTimeUsage        float64 `json:"optimalTimeUsage"`
	TimeEfficiency          float64 `json:"timeEfficiency"`
}

type MistakePatterns struct {
	ByType                 map[string]int           `json:"byType"`
	ByTopic                map[string]TopicMistakes `json:"byTopic"`
	CommonMistakes         []CommonMistake          `json:"commonMistakes"`
	ConfidenceMisalignment []ConfidenceMismatch     `json:"confidenceMisalignment"`
}

type TopicMistakes struct {
	Count     int             `json:"count"`
	Questions []MistakeDetail `json:"questions"`
}

// MistakeDetail describes one incorrect or unanswered question.
type MistakeDetail struct {
	Question      int             `json:"question"`
	Answer        *int            `json:"answer"`
	CorrectAnswer int             `json:"correctAnswer"`
	Type          string          `json:"type"`
	Confidence    ConfidenceLabel `json:"confidence,omitempty"`
}

type CommonMistake struct {
	Type       string  `json:"type"`
	Frequency  int     `json:"frequency"`
	Percentage float64 `json:"percentage"`
}

type ConfidenceMismatch struct {
	Question   int             `json:"question"`
	Confidence ConfidenceLabel `json:"confidence"`
	Topic      string          `json:"topic"`
}

type PerformanceMetrics struct {
	OverallScore   float64 `json:"overallScore"`
	TimeManagement float64 `json:"timeManagement"`
	Accuracy       float64 `json:"accuracy"`
	Speed          float64 `json:"speed"`
	Consistency    float64 `json:"consistency"`
	Improvement    float64 `json:"improvement"`
}

// ComparativeAnalysis is a simulated peer comparison. Its values come from a
// pluggable population model and are not real population statistics.
type ComparativeAnalysis struct {
	Percentile        float64 `json:"percentile"`
	AverageScore      float64 `json:"averageScore"`
	YourRank          int     `json:"yourRank"`
	TotalParticipants int     `json:"totalParticipants"`
}

type Insights struct {
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
}
