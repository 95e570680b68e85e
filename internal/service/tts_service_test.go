package service

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"roleplay_coach_backend/internal/config"
	"sort"
	"strings"
	"testing"
)

func TestResolveVoice(t *testing.T) {
	if got := ResolveVoice("Daniel"); got != "onwK4e9ZLuTAKqWW03F9" {
		t.Fatalf("unexpected id for Daniel: %q", got)
	}
	for _, name := range []string{"", "Nonexistent", "sarah"} {
		if got := ResolveVoice(name); got != voiceIDs[DefaultVoice] {
			t.Fatalf("voice %q: expected fallback to default, got %q", name, got)
		}
	}
}

func TestAvailableVoicesSorted(t *testing.T) {
	names := AvailableVoices()
	if len(names) != len(voiceIDs) {
		t.Fatalf("expected %d voices, got %d", len(voiceIDs), len(names))
	}
	if !sort.StringsAreSorted(names) {
		t.Fatalf("voices not sorted: %v", names)
	}
}

func TestSynthesizeRequiresKeyAndText(t *testing.T) {
	svc := NewTTSService(config.TTSConfig{BaseURL: "http://127.0.0.1:0"})
	if _, err := svc.Synthesize(TTSRequest{Text: "hola"}); err == nil {
		t.Fatal("expected error without API key")
	}

	svc = NewTTSService(config.TTSConfig{BaseURL: "http://127.0.0.1:0", APIKey: "k"})
	if _, err := svc.Synthesize(TTSRequest{}); err == nil {
		t.Fatal("expected error on empty text")
	}
}

func TestSynthesizeEncodesAudio(t *testing.T) {
	audio := bytes.Repeat([]byte{0x01, 0x02, 0x03, 0x04}, 20000) // 80000 bytes, several chunks

	var gotPath, gotKey string
	var payload synthesisPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("xi-api-key")
		json.NewDecoder(r.Body).Decode(&payload)
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write(audio)
	}))
	defer srv.Close()

	svc := NewTTSService(config.TTSConfig{BaseURL: srv.URL, APIKey: "secret", Model: "eleven_multilingual_v2"})
	resp, err := svc.Synthesize(TTSRequest{Text: "Buenos días", Voice: "Lily"})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	if !strings.Contains(gotPath, "/v1/text-to-speech/"+voiceIDs["Lily"]) {
		t.Fatalf("unexpected endpoint path %q", gotPath)
	}
	if gotKey != "secret" {
		t.Fatalf("unexpected api key header %q", gotKey)
	}
	if payload.VoiceSettings.Stability != 0.5 || payload.VoiceSettings.SimilarityBoost != 0.75 ||
		payload.VoiceSettings.Style != 0.0 || !payload.VoiceSettings.UseSpeakerBoost {
		t.Fatalf("unexpected voice settings: %+v", payload.VoiceSettings)
	}

	decoded, err := base64.StdEncoding.DecodeString(resp.AudioContent)
	if err != nil {
		t.Fatalf("concatenated chunks are not valid base64: %v", err)
	}
	if !bytes.Equal(decoded, audio) {
		t.Fatal("decoded audio does not round-trip")
	}
}

func TestSynthesizeUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusPaymentRequired)
	}))
	defer srv.Close()

	svc := NewTTSService(config.TTSConfig{BaseURL: srv.URL, APIKey: "k"})
	if _, err := svc.Synthesize(TTSRequest{Text: "hola"}); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}

func TestEncodeBase64ChunksMatchesSinglePass(t *testing.T) {
	data := bytes.Repeat([]byte("abc"), base64ChunkSize) // far larger than one chunk
	if got, want := encodeBase64Chunks(data), base64.StdEncoding.EncodeToString(data); got != want {
		t.Fatal("chunked encoding diverges from single-pass encoding")
	}
}
