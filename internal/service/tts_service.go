package service

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"roleplay_coach_backend/internal/config"
	"roleplay_coach_backend/internal/util"
	"roleplay_coach_backend/pkg/monitoring"
	"sort"
	"time"
)

// DefaultVoice is used when the request omits the voice or names an
// unknown one. Unknown names are a silent fallback, not an error.
const DefaultVoice = "Sarah"

const defaultTTSModel = "eleven_multilingual_v2"

// base64ChunkSize must stay a multiple of 3 so concatenated chunks form
// a valid base64 stream.
const base64ChunkSize = 30720

// voiceIDs maps symbolic voice names to provider voice ids.
var voiceIDs = map[string]string{
	"Sarah":  "EXAVITQu4vr4xnSDxMaL",
	"Laura":  "FGY2WhTYpPnrIDTdsKH5",
	"George": "JBFqnCBsd6RMkjVDRZzb",
	"Daniel": "onwK4e9ZLuTAKqWW03F9",
	"Lily":   "pFZP5JQG7iQjIQuC4Bku",
	"River":  "SAz9YHcvj6GT2YYXdXww",
	"Will":   "bIHbv24MWmeRgasZH58o",
	"Eric":   "cjVigY5qzO86Huf0OWal",
}

type TTSService struct {
	config config.TTSConfig
	client *http.Client
}

func NewTTSService(cfg config.TTSConfig) *TTSService {
	return &TTSService{
		config: cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// UpdateConfig swaps the provider endpoint and credentials on config reload.
func (s *TTSService) UpdateConfig(cfg config.TTSConfig) {
	s.config = cfg
}

type TTSRequest struct {
	Text  string `json:"text" binding:"required"`
	Voice string `json:"voice"`
	Model string `json:"model"`
}

type TTSResponse struct {
	AudioContent string `json:"audioContent"`
}

type synthesisPayload struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

// AvailableVoices lists the symbolic voice names, sorted for stable output.
func AvailableVoices() []string {
	names := make([]string, 0, len(voiceIDs))
	for name := range voiceIDs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveVoice maps a symbolic name to the provider voice id, silently
// falling back to the default voice.
func ResolveVoice(name string) string {
	if id, ok := voiceIDs[name]; ok {
		return id
	}
	return voiceIDs[DefaultVoice]
}

// Synthesize requests audio for the text and returns it base64-encoded.
func (s *TTSService) Synthesize(req TTSRequest) (*TTSResponse, error) {
	if s.config.APIKey == "" {
		return nil, util.ErrMissingTTSKey
	}
	if req.Text == "" {
		return nil, util.ErrEmptyText
	}

	modelID := req.Model
	if modelID == "" {
		modelID = s.config.Model
	}
	if modelID == "" {
		modelID = defaultTTSModel
	}

	payload := synthesisPayload{
		Text:    req.Text,
		ModelID: modelID,
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
			Style:           0.0,
			UseSpeakerBoost: true,
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v1/text-to-speech/%s", s.config.BaseURL, ResolveVoice(req.Voice))
	httpReq, err := http.NewRequest("POST", endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("xi-api-key", s.config.APIKey)
	httpReq.Header.Set("Accept", "audio/mpeg")

	start := time.Now()
	resp, err := s.client.Do(httpReq)
	monitoring.ObserveUpstream("synthesis", start, err)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("TTS API error (status %d): %s", resp.StatusCode, string(body))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &TTSResponse{AudioContent: encodeBase64Chunks(audio)}, nil
}

// encodeBase64Chunks encodes in fixed-size chunks; the chunk size is a
// multiple of 3, so the concatenation is itself valid base64.
func encodeBase64Chunks(data []byte) string {
	var b bytes.Buffer
	for start := 0; start < len(data); start += base64ChunkSize {
		end := start + base64ChunkSize
		if end > len(data) {
			end = len(data)
		}
		b.WriteString(base64.StdEncoding.EncodeToString(data[start:end]))
	}
	return b.String()
}
