package scoreoutreachmessage

type Input struct {
	UserID        string `json:"userId"`
	RecruiterID   string `json:"recruiterId"`
	Text          string `json:"messageText"`
	MessageType   string `json:"messageType"`
	RecruiterName string `json:"recruiterName"`
	CompanyName   string `json:"companyName"`
}

type Output struct {
	MessageScore            int            `json:"messageScore"`
	Components              map[string]int `json:"messageComponents"`
	Feedback                []string       `json:"messageFeedback"`
	Suggestions             []string       `json:"messageSuggestions"`
	MessageType             string         `json:"messageType"`
	WordCount               int            `json:"wordCount"`
	HasPersonalization      bool           `json:"hasPersonalization"`
	HasMetrics              bool           `json:"hasMetrics"`
	HasCTA                  bool           `json:"hasCta"`
	PersonalizationElements []string       `json:"personalizationElements"`
	// ReadyToSend is true once the draft clears the send threshold.
	ReadyToSend bool `json:"readyToSend"`
}
