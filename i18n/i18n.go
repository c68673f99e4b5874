// Package i18n holds the two supported languages and their fixed UI strings.
//
// InfoSetu serves citizens in English and Hindi. Each language maps 1:1 to a
// BCP 47 locale tag (used for speech capture, speech synthesis, and OCR) and
// to a table of fixed UI strings. Switching languages is synchronous: it only
// swaps which table lookups resolve against.
package i18n

import "golang.org/x/text/language"

// Language identifies one of the two supported languages.
type Language string

const (
	English Language = "en"
	Hindi   Language = "hi"
)

var locales = map[Language]language.Tag{
	English: language.MustParse("en-IN"),
	Hindi:   language.MustParse("hi-IN"),
}

// Locale returns the BCP 47 tag for the language (en-IN or hi-IN).
func (l Language) Locale() language.Tag {
	if tag, ok := locales[l]; ok {
		return tag
	}
	return locales[English]
}

// OCRCode returns the Tesseract traineddata code for the language.
func (l Language) OCRCode() string {
	if l == Hindi {
		return "hin"
	}
	return "eng"
}

// Toggle returns the other supported language.
func (l Language) Toggle() Language {
	if l == English {
		return Hindi
	}
	return English
}

// Valid reports whether l is one of the two supported languages.
func (l Language) Valid() bool {
	return l == English || l == Hindi
}

// Strings is the fixed UI string table for one language.
type Strings struct {
	Title            string
	Subtitle         string
	Welcome          string
	InputPlaceholder string
	Thinking         string
	Listening        string
	ProcessingDoc    string
	VoiceOn          string
	VoiceOff         string
	SpeechOn         string
	SpeechOff        string
	QuickHelpTitle   string
	ConnectionError  string
	NotImageWarning  string
	DocSummaryPrompt string
	DocFollowUp      string
	QuickHelpAsk     string // format: one %s for the service label
	LanguageName     string
}

var tables = map[Language]Strings{
	English: {
		Title:            "InfoSetu - AI Citizen Assistant",
		Subtitle:         "Your intelligent bridge to government services",
		Welcome:          "Namaste! I'm InfoSetu, your AI-powered citizen service assistant. I serve as your intelligent bridge to government services, helping you with schemes, forms, eligibility criteria, and more - all in your preferred language. How may I assist you today?",
		InputPlaceholder: "Ask InfoSetu about government schemes, forms, eligibility...",
		Thinking:         "Thinking...",
		Listening:        "Listening... (esc to cancel)",
		ProcessingDoc:    "Reading document...",
		VoiceOn:          "Voice input on",
		VoiceOff:         "Voice input unavailable",
		SpeechOn:         "Speech on",
		SpeechOff:        "Speech off",
		QuickHelpTitle:   "Quick Help",
		ConnectionError:  "Sorry, I'm having trouble connecting right now. Please check your internet connection and try again.",
		NotImageWarning:  "Please upload an image file (photo or scan of your document).",
		DocSummaryPrompt: "I read your document. It begins: %s… You can now ask me a question about it.",
		DocFollowUp:      "What should I know about this document?",
		QuickHelpAsk:     "Tell me about %s",
		LanguageName:     "English",
	},
	Hindi: {
		Title:            "इन्फोसेतु - एआई नागरिक सहायक",
		Subtitle:         "सरकारी सेवाओं के लिए आपका बुद्धिमान सेतु",
		Welcome:          "नमस्ते! मैं इन्फोसेतु हूँ, आपका एआई-संचालित नागरिक सेवा सहायक। मैं सरकारी सेवाओं के लिए आपका सेतु हूँ - योजनाएँ, फॉर्म, पात्रता और बहुत कुछ, आपकी भाषा में। मैं आपकी कैसे सहायता कर सकता हूँ?",
		InputPlaceholder: "सरकारी योजनाओं, फॉर्म, पात्रता के बारे में पूछें...",
		Thinking:         "सोच रहा हूँ...",
		Listening:        "सुन रहा हूँ... (रद्द करने के लिए esc)",
		ProcessingDoc:    "दस्तावेज़ पढ़ रहा हूँ...",
		VoiceOn:          "आवाज़ इनपुट चालू",
		VoiceOff:         "आवाज़ इनपुट उपलब्ध नहीं",
		SpeechOn:         "वाणी चालू",
		SpeechOff:        "वाणी बंद",
		QuickHelpTitle:   "त्वरित सहायता",
		ConnectionError:  "क्षमा करें, अभी कनेक्शन में समस्या है। कृपया अपना इंटरनेट कनेक्शन जाँचें और पुनः प्रयास करें।",
		NotImageWarning:  "कृपया एक छवि फ़ाइल अपलोड करें (दस्तावेज़ की फोटो या स्कैन)।",
		DocSummaryPrompt: "मैंने आपका दस्तावेज़ पढ़ लिया। यह इस प्रकार शुरू होता है: %s… अब आप इसके बारे में प्रश्न पूछ सकते हैं।",
		DocFollowUp:      "इस दस्तावेज़ के बारे में मुझे क्या जानना चाहिए?",
		QuickHelpAsk:     "मुझे %s के बारे में बताइए",
		LanguageName:     "हिन्दी",
	},
}

// Table returns the UI string table for the language.
func Table(l Language) Strings {
	if t, ok := tables[l]; ok {
		return t
	}
	return tables[English]
}

// Service is one of the six quick-help services.
type Service struct {
	ID    string
	Label map[Language]string
}

// Services lists the quick-help shortcuts in display order.
var Services = []Service{
	{ID: "pm-kisan", Label: map[Language]string{English: "PM-KISAN Scheme", Hindi: "पीएम-किसान योजना"}},
	{ID: "aadhaar", Label: map[Language]string{English: "Aadhaar Services", Hindi: "आधार सेवाएँ"}},
	{ID: "ration-card", Label: map[Language]string{English: "Digital Ration Card", Hindi: "डिजिटल राशन कार्ड"}},
	{ID: "pension", Label: map[Language]string{English: "Pension Schemes", Hindi: "पेंशन योजनाएँ"}},
	{ID: "employment", Label: map[Language]string{English: "Employment Programs", Hindi: "रोजगार कार्यक्रम"}},
	{ID: "health-insurance", Label: map[Language]string{English: "Health Insurance", Hindi: "स्वास्थ्य बीमा"}},
}
