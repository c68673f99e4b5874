package storage

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// AnswerEntry is one row of the scheme knowledge base: the answer for one
// category in one language, plus the trigger keywords contributed by that
// language. Position fixes the rule evaluation order.
type AnswerEntry struct {
	Category string
	Language string
	Position int
	Keywords string // comma-separated; empty for the no-match default row
	Answer   string
}

// KnowledgeStore persists the canned scheme answers in SQLite. The resolver
// reads the whole table once at startup; nothing writes to it afterwards.
type KnowledgeStore struct {
	db *sql.DB
}

// NewKnowledgeStore opens (creating and seeding if needed) the knowledge base.
func NewKnowledgeStore(dataDir string) (*KnowledgeStore, error) {
	dbPath := filepath.Join(dataDir, "knowledge.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &KnowledgeStore{db: db}

	if err := store.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

func (ks *KnowledgeStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS answers (
		category TEXT NOT NULL,
		language TEXT NOT NULL,
		position INTEGER NOT NULL,
		keywords TEXT NOT NULL,
		answer TEXT NOT NULL,
		PRIMARY KEY (category, language)
	);
	CREATE INDEX IF NOT EXISTS idx_answers_position ON answers(position);
	`

	if _, err := ks.db.Exec(schema); err != nil {
		return err
	}

	return ks.seedIfEmpty()
}

// seedIfEmpty writes the built-in scheme data on first run only. Deployments
// can edit or extend the table afterwards; reseeding never overwrites rows.
func (ks *KnowledgeStore) seedIfEmpty() error {
	var count int
	if err := ks.db.QueryRow(`SELECT COUNT(*) FROM answers`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := ks.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO answers (category, language, position, keywords, answer) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range seedEntries {
		if _, err := stmt.Exec(e.Category, e.Language, e.Position, e.Keywords, e.Answer); err != nil {
			return fmt.Errorf("failed to seed answer %s/%s: %w", e.Category, e.Language, err)
		}
	}

	return tx.Commit()
}

// LoadAll returns every entry ordered by position then language.
func (ks *KnowledgeStore) LoadAll() ([]AnswerEntry, error) {
	rows, err := ks.db.Query(`SELECT category, language, position, keywords, answer FROM answers ORDER BY position, language`)
	if err != nil {
		return nil, fmt.Errorf("failed to query answers: %w", err)
	}
	defer rows.Close()

	var entries []AnswerEntry
	for rows.Next() {
		var e AnswerEntry
		if err := rows.Scan(&e.Category, &e.Language, &e.Position, &e.Keywords, &e.Answer); err != nil {
			return nil, fmt.Errorf("failed to scan answer row: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Close closes the underlying database.
func (ks *KnowledgeStore) Close() error {
	return ks.db.Close()
}

// seedEntries is the built-in knowledge base. Position is the documented
// rule evaluation order: aadhaar before pm-kisan before pension before
// employment before ration-card before health-insurance, default last.
var seedEntries = []AnswerEntry{
	{"aadhaar", "en", 1, "aadhaar",
		"Aadhaar services include enrollment, update, and download. For enrollment: Visit any Aadhaar center with proof of identity, proof of address, and date of birth proof. For updates: Use the online portal uidai.gov.in or visit Aadhaar centers. Download e-Aadhaar from the official website using your enrollment number."},
	{"aadhaar", "hi", 1, "आधार",
		"आधार सेवाओं में नामांकन, अद्यतन और डाउनलोड शामिल हैं। नामांकन के लिए: पहचान प्रमाण, पता प्रमाण और जन्म तिथि प्रमाण के साथ किसी भी आधार केंद्र पर जाएँ। अद्यतन के लिए: uidai.gov.in पोर्टल का उपयोग करें या आधार केंद्र जाएँ। अपने नामांकन नंबर से आधिकारिक वेबसाइट से ई-आधार डाउनलोड करें।"},
	{"pm-kisan", "en", 2, "pm-kisan,kisan",
		"PM-KISAN Scheme provides ₹6,000 per year to eligible farmer families in three equal installments."},
	{"pm-kisan", "hi", 2, "किसान",
		"पीएम-किसान योजना पात्र किसान परिवारों को तीन समान किस्तों में प्रति वर्ष ₹6,000 प्रदान करती है।"},
	{"pension", "en", 3, "pension",
		"Government pension schemes include NSAP, Atal Pension Yojana, and Employees' Pension Scheme."},
	{"pension", "hi", 3, "पेंशन",
		"सरकारी पेंशन योजनाओं में एनएसएपी, अटल पेंशन योजना और कर्मचारी पेंशन योजना शामिल हैं।"},
	{"employment", "en", 4, "employment,job",
		"Employment programs include MNREGA, National Career Service, Skill India Mission, and StartUp India."},
	{"employment", "hi", 4, "रोजगार,नौकरी",
		"रोजगार कार्यक्रमों में मनरेगा, राष्ट्रीय करियर सेवा, स्किल इंडिया मिशन और स्टार्टअप इंडिया शामिल हैं।"},
	{"ration-card", "en", 5, "ration,food",
		"Digital Ration Card provides subsidized food grains under National Food Security Act."},
	{"ration-card", "hi", 5, "राशन",
		"डिजिटल राशन कार्ड राष्ट्रीय खाद्य सुरक्षा अधिनियम के अंतर्गत रियायती खाद्यान्न प्रदान करता है।"},
	{"health-insurance", "en", 6, "health,insurance",
		"Ayushman Bharat PM-JAY provides health insurance coverage of ₹5 lakhs per family annually."},
	{"health-insurance", "hi", 6, "स्वास्थ्य,बीमा",
		"आयुष्मान भारत पीएम-जेएवाई प्रति परिवार प्रति वर्ष ₹5 लाख का स्वास्थ्य बीमा कवरेज प्रदान करता है।"},
	{"default", "en", 7, "",
		"I can help with Aadhaar services, PM-KISAN scheme, pension schemes, employment programs, digital ration cards, and health insurance. Which service do you need information about?"},
	{"default", "hi", 7, "",
		"मैं आधार सेवाओं, पीएम-किसान योजना, पेंशन योजनाओं, रोजगार कार्यक्रमों, डिजिटल राशन कार्ड और स्वास्थ्य बीमा में सहायता कर सकता हूँ। आपको किस सेवा की जानकारी चाहिए?"},
}
