// Command openai-stub serves a deterministic OpenAI-compatible embeddings
// endpoint for offline runs and integration tests. Vectors are derived
// from a hash of the input text, so identical texts always embed
// identically.
package main

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"log"
	"math"
	"net/http"
	"os"
	"strings"
)

const stubDimensions = 64

type embeddingRequest struct {
	Model string `json:"model"`
	Input any    `json:"input"`
}

func main() {
	model := os.Getenv("MODEL_ID")
	if strings.TrimSpace(model) == "" {
		model = "text-embedding-3-small"
	}
	addr := os.Getenv("ADDR")
	if strings.TrimSpace(addr) == "" {
		addr = ":8081"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"id": model, "object": "model"}},
		})
	})
	mux.HandleFunc("/v1/embeddings", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req embeddingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		inputs := inputStrings(req.Input)
		data := make([]map[string]any, 0, len(inputs))
		for i, text := range inputs {
			data = append(data, map[string]any{
				"object":    "embedding",
				"index":     i,
				"embedding": hashVector(text),
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"model":  req.Model,
			"data":   data,
			"usage":  map[string]int{"prompt_tokens": 0, "total_tokens": 0},
		})
	})

	log.Printf("openai-stub listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}

// inputStrings accepts the string and []string request forms.
func inputStrings(input any) []string {
	switch v := input.(type) {
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// hashVector expands sha256(text) into a unit-length vector.
func hashVector(text string) []float32 {
	sum := sha256.Sum256([]byte(text))
	vec := make([]float32, stubDimensions)
	var norm float64
	for i := range vec {
		seed := binary.LittleEndian.Uint32(sum[(i*4)%len(sum):][:4])
		v := float32(int32(seed^uint32(i)*2654435761)) / float32(1<<31)
		vec[i] = v
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
	}
	return vec
}
