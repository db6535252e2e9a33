package model

// SynonymEntry maps a canonical (trimmed, lowercased) word to its
// dictionary-registered variants.
type SynonymEntry struct {
	Canonical string   `json:"canonical" bson:"_id"`
	Synonyms  []string `json:"synonyms" bson:"synonyms"`
}
