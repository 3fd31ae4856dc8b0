// ABOUTME: Audio briefing service synthesizing spoken key points via Google TTS
// ABOUTME: Chunked synthesis with cached audio and credential gating

package briefing

import (
	"bytes"
	"context"
	"crypto/md5"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/api/option"

	"github.com/sundeep8967/keypoints-backend-1/core/domain"
	"github.com/sundeep8967/keypoints-backend-1/core/errors"
	"github.com/sundeep8967/keypoints-backend-1/core/interfaces"
)

// credentialsEnv is the deployment contract for TTS credentials.
// Metadata-server default credentials are not probed.
const credentialsEnv = "GOOGLE_APPLICATION_CREDENTIALS"

// Config tunes briefing synthesis.
type Config struct {
	// Enabled turns the service on; credentials must also be present
	Enabled bool

	// LanguageCode selects the synthesis language
	LanguageCode string

	// CredentialsFile is an explicit service account key path. Empty
	// falls back to application default credentials.
	CredentialsFile string

	// Voice names the synthesis voice
	Voice string

	// MaxChunkChars bounds the text sent per synthesis request
	MaxChunkChars int

	// CacheTTL is how long synthesized audio stays cached
	CacheTTL time.Duration
}

// DefaultConfig returns the production briefing settings.
func DefaultConfig() Config {
	return Config{
		LanguageCode:  "en-US",
		Voice:         "en-US-Neural2-J",
		MaxChunkChars: 1000,
		CacheTTL:      7 * 24 * time.Hour,
	}
}

// Synthesizer is the slice of the TTS client the service uses.
type Synthesizer interface {
	SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest) (*texttospeechpb.SynthesizeSpeechResponse, error)
	Close() error
}

// googleSynthesizer adapts the Google client to the Synthesizer
// interface, dropping the variadic call options.
type googleSynthesizer struct {
	client *texttospeech.Client
}

func (g *googleSynthesizer) SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest) (*texttospeechpb.SynthesizeSpeechResponse, error) {
	return g.client.SynthesizeSpeech(ctx, req)
}

func (g *googleSynthesizer) Close() error {
	return g.client.Close()
}

// Service synthesizes spoken audio briefings from article key points.
// The TTS client is dialed on first use so deployments without
// credentials can still construct the service.
type Service struct {
	deps   interfaces.Dependencies
	config Config

	once    sync.Once
	synth   Synthesizer
	dialErr error
}

// NewService creates a briefing service that dials the Google TTS API
// on first synthesis.
func NewService(deps interfaces.Dependencies, config Config) *Service {
	if config.MaxChunkChars <= 0 {
		config.MaxChunkChars = DefaultConfig().MaxChunkChars
	}
	if config.LanguageCode == "" {
		config.LanguageCode = DefaultConfig().LanguageCode
	}
	if config.Voice == "" {
		config.Voice = DefaultConfig().Voice
	}
	if config.CacheTTL <= 0 {
		config.CacheTTL = DefaultConfig().CacheTTL
	}
	return &Service{deps: deps, config: config}
}

// NewServiceWithClient creates a briefing service over an existing
// Synthesizer.
func NewServiceWithClient(deps interfaces.Dependencies, config Config, synth Synthesizer) *Service {
	s := NewService(deps, config)
	s.synth = synth
	return s
}

// Enabled reports whether synthesis is turned on and credentials are
// configured.
func (s *Service) Enabled() bool {
	if !s.config.Enabled {
		return false
	}
	if s.synth != nil || s.config.CredentialsFile != "" {
		return true
	}
	return os.Getenv(credentialsEnv) != ""
}

// Synthesize returns OGG Opus audio speaking the key points of the
// given articles. Audio is cached by script content.
func (s *Service) Synthesize(ctx context.Context, articles []domain.Article) ([]byte, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("briefing synthesis is not enabled")
	}

	script := Script(articles)
	if script == "" {
		return nil, fmt.Errorf("no speakable content in %d articles", len(articles))
	}

	cacheKey := fmt.Sprintf("briefing:%x", md5.Sum([]byte(script)))
	if s.deps.Cache != nil {
		if audio, err := s.deps.Cache.Get(ctx, cacheKey); err == nil && len(audio) > 0 {
			if s.deps.Logger != nil {
				s.deps.Logger.Debug("Briefing audio served from cache", map[string]interface{}{
					"bytes": len(audio),
				})
			}
			return audio, nil
		}
	}

	synth, err := s.client(ctx)
	if err != nil {
		return nil, errors.WrapError(err, "creating TTS client")
	}

	var audio bytes.Buffer
	chunks := splitIntoChunks(script, s.config.MaxChunkChars)
	for _, chunk := range chunks {
		req := &texttospeechpb.SynthesizeSpeechRequest{
			Input: &texttospeechpb.SynthesisInput{
				InputSource: &texttospeechpb.SynthesisInput_Text{Text: chunk},
			},
			Voice: &texttospeechpb.VoiceSelectionParams{
				LanguageCode: s.config.LanguageCode,
				Name:         s.config.Voice,
			},
			AudioConfig: &texttospeechpb.AudioConfig{
				AudioEncoding: texttospeechpb.AudioEncoding_OGG_OPUS,
			},
		}

		resp, err := synth.SynthesizeSpeech(ctx, req)
		if err != nil {
			return nil, errors.WrapError(err, "synthesizing speech")
		}
		audio.Write(resp.AudioContent)
	}

	if s.deps.Cache != nil {
		_ = s.deps.Cache.Set(ctx, cacheKey, audio.Bytes(), s.config.CacheTTL)
	}
	if s.deps.Logger != nil {
		s.deps.Logger.Info("Briefing synthesized", map[string]interface{}{
			"articles": len(articles),
			"chunks":   len(chunks),
			"bytes":    audio.Len(),
		})
	}
	return audio.Bytes(), nil
}

// Close releases the TTS client if one was dialed.
func (s *Service) Close() error {
	if s.synth != nil {
		return s.synth.Close()
	}
	return nil
}

// client returns the Synthesizer, dialing the Google API once.
func (s *Service) client(ctx context.Context) (Synthesizer, error) {
	s.once.Do(func() {
		if s.synth != nil {
			return
		}
		var opts []option.ClientOption
		if s.config.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(s.config.CredentialsFile))
		}
		client, err := texttospeech.NewClient(ctx, opts...)
		if err != nil {
			s.dialErr = err
			return
		}
		s.synth = &googleSynthesizer{client: client}
	})
	if s.dialErr != nil {
		return nil, s.dialErr
	}
	return s.synth, nil
}

// splitIntoChunks splits text on word boundaries into chunks of at
// most maxChunkSize characters.
func splitIntoChunks(text string, maxChunkSize int) []string {
	var chunks []string
	words := strings.Fields(text)
	var chunk string

	for _, word := range words {
		if len(chunk)+len(word)+1 > maxChunkSize && chunk != "" {
			chunks = append(chunks, chunk)
			chunk = word
			continue
		}
		if chunk != "" {
			chunk += " "
		}
		chunk += word
	}
	if chunk != "" {
		chunks = append(chunks, chunk)
	}
	return chunks
}
