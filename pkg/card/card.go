package card

const (
	MessageType      = "message"
	AdaptiveCardType = "application/vnd.microsoft.card.adaptive"
	AdaptiveSchema   = "http://adaptivecards.io/schemas/adaptive-card.json"
	AdaptiveVersion  = "1.4"
	TextBlockType    = "TextBlock"
	FactSetType      = "FactSet"
	adaptiveCardKind = "AdaptiveCard"
	sizeLarge        = "Large"
	weightBolder     = "Bolder"
	colorAttention   = "Attention"
	colorGood        = "Good"
)

// Message is the envelope a Teams incoming webhook accepts.
type Message struct {
	Type        string       `json:"type"`
	Attachments []Attachment `json:"attachments"`
}

type Attachment struct {
	ContentType string       `json:"contentType"`
	Content     AdaptiveCard `json:"content"`
}

type AdaptiveCard struct {
	Schema  string    `json:"$schema"`
	Type    string    `json:"type"`
	Version string    `json:"version"`
	Body    []Element `json:"body"`
}

// Element is a TextBlock or a FactSet.
type Element struct {
	Type   string `json:"type"`
	Text   string `json:"text,omitempty"`
	Size   string `json:"size,omitempty"`
	Weight string `json:"weight,omitempty"`
	Color  string `json:"color,omitempty"`
	Wrap   bool   `json:"wrap,omitempty"`
	Facts  []Fact `json:"facts,omitempty"`
}

type Fact struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

func newMessage(body ...Element) Message {
	return Message{
		Type: MessageType,
		Attachments: []Attachment{
			{
				ContentType: AdaptiveCardType,
				Content: AdaptiveCard{
					Schema:  AdaptiveSchema,
					Type:    adaptiveCardKind,
					Version: AdaptiveVersion,
					Body:    body,
				},
			},
		},
	}
}

func textBlock(text string) Element {
	return Element{Type: TextBlockType, Text: text}
}

// Texts returns the text of every TextBlock in the message, in order.
func (m Message) Texts() []string {
	var texts []string
	for _, a := range m.Attachments {
		for _, e := range a.Content.Body {
			if e.Type == TextBlockType {
				texts = append(texts, e.Text)
			}
		}
	}
	return texts
}
