package cerebras

import "strings"

// Known Cerebras model identifiers. The live catalog is authoritative; use
// Client.ListModels to discover models added after this SDK release.
const (
	ModelLlama3_1_8B  = "llama3.1-8b"
	ModelLlama3_1_70B = "llama3.1-70b"
	ModelLlama3_3_70B = "llama-3.3-70b"
	ModelLlama4Scout  = "llama-4-scout-17b-16e-instruct"
	ModelQwen3_32B    = "qwen-3-32b"
	ModelGPTOSS120B   = "gpt-oss-120b"
)

// Model describes one entry in the model catalog.
type Model struct {
	ID      string `json:"id"`
	Object  string `json:"object"` // "model"
	Created int64  `json:"created,omitempty"`
	OwnedBy string `json:"owned_by,omitempty"`
}

// ModelList is the /models listing response.
type ModelList struct {
	Object string  `json:"object"` // "list"
	Data   []Model `json:"data"`
}

// ModelFamily reduces a full model identifier to its family name, e.g.
// "llama3.1-8b" and "llama-4-scout-17b-16e-instruct" both map to "llama".
// Unrecognized identifiers map to their first dash-separated token.
func ModelFamily(id string) string {
	id = strings.ToLower(id)
	switch {
	case strings.HasPrefix(id, "llama"):
		return "llama"
	case strings.HasPrefix(id, "qwen"):
		return "qwen"
	case strings.HasPrefix(id, "gpt-oss"):
		return "gpt-oss"
	}
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
