package game

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// DefaultSampleRate 没有音频上下文时使用的采样率
const DefaultSampleRate = 48000

// ErrUnknownSound 音效资源ID没有对应的文件
var ErrUnknownSound = errors.New("unknown sound id")

// ResourceManager is responsible for centralized management of sound resources.
// It resolves sound IDs to files, decodes them once and caches the PCM data,
// so that every play can create an independent player and overlap freely.
//
// Supported formats: OGG Vorbis (.ogg), WAV (.wav) and MP3 (.mp3).
// When a configured file is missing, a short synthesized noise burst is used
// instead, so the game still gives audible feedback without bundled assets.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. For the single-threaded game loop,
// no synchronization is needed.
//
// Usage:
//
//	audioContext := audio.NewContext(48000)
//	rm := NewResourceManager(audioContext, cfg.Sounds)
//	pcm, err := rm.SoundPCM("SOUND_PUFFERFISH_EXPLODE")
type ResourceManager struct {
	audioContext *audio.Context    // Global audio context, may be nil (silent mode)
	sampleRate   int               // Sample rate used for decoding
	sounds       map[string]string // Sound ID -> file path
	pcmCache     map[string][]byte // Decoded 16-bit stereo PCM: sound ID -> data
	synthesized  map[string]bool   // Sound IDs served by the fallback generator
}

// NewResourceManager creates a ResourceManager.
//
// Parameters:
//   - audioContext: The global audio context. May be nil, in which case sounds
//     are still decoded at DefaultSampleRate but cannot be played.
//   - sounds: Sound ID -> file path mapping (from the game config).
func NewResourceManager(audioContext *audio.Context, sounds map[string]string) *ResourceManager {
	sampleRate := DefaultSampleRate
	if audioContext != nil {
		sampleRate = audioContext.SampleRate()
	}

	mapping := make(map[string]string, len(sounds))
	for id, path := range sounds {
		mapping[id] = path
	}

	return &ResourceManager{
		audioContext: audioContext,
		sampleRate:   sampleRate,
		sounds:       mapping,
		pcmCache:     make(map[string][]byte),
		synthesized:  make(map[string]bool),
	}
}

// AudioContext returns the audio context, or nil in silent mode.
func (rm *ResourceManager) AudioContext() *audio.Context {
	return rm.audioContext
}

// SampleRate returns the sample rate sounds are decoded at.
func (rm *ResourceManager) SampleRate() int {
	return rm.sampleRate
}

// SoundPath returns the file path configured for a sound ID.
func (rm *ResourceManager) SoundPath(soundID string) (string, bool) {
	path, ok := rm.sounds[soundID]
	return path, ok
}

// IsSynthesized reports whether the sound is served by the fallback generator.
func (rm *ResourceManager) IsSynthesized(soundID string) bool {
	return rm.synthesized[soundID]
}

// SoundPCM returns decoded PCM data for a sound ID, loading it on first use.
//
// Returns:
//   - The 16-bit little-endian stereo PCM data at SampleRate().
//   - ErrUnknownSound if the ID is not configured.
//   - A decode error if the file exists but cannot be decoded.
//
// A missing file is not an error: a synthesized burst is returned instead.
func (rm *ResourceManager) SoundPCM(soundID string) ([]byte, error) {
	if pcm, ok := rm.pcmCache[soundID]; ok {
		return pcm, nil
	}

	path, ok := rm.sounds[soundID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSound, soundID)
	}

	pcm, err := rm.LoadSoundEffect(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("[ResourceManager] Warning: sound file %s not found, using synthesized burst for %s", path, soundID)
		pcm = SynthesizeBurst(rm.sampleRate, burstDuration, int64(len(soundID)))
		rm.synthesized[soundID] = true
		err = nil
	}
	if err != nil {
		return nil, err
	}

	rm.pcmCache[soundID] = pcm
	return pcm, nil
}

// LoadSoundEffect reads and decodes a sound file into PCM data.
// The file format is chosen by extension.
func (rm *ResourceManager) LoadSoundEffect(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sound effect file %s: %w", path, err)
	}
	defer file.Close()

	// Read the entire file into memory so the decoder can seek
	audioData, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read sound effect file %s: %w", path, err)
	}

	return decodePCM(path, audioData, rm.sampleRate)
}

// decodePCM decodes an in-memory sound file, resampling to sampleRate.
func decodePCM(path string, data []byte, sampleRate int) ([]byte, error) {
	reader := bytes.NewReader(data)

	var stream io.Reader
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ogg":
		decoded, err := vorbis.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG sound effect %s: %w", path, err)
		}
		stream = decoded
	case ".wav":
		decoded, err := wav.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV sound effect %s: %w", path, err)
		}
		stream = decoded
	case ".mp3":
		decoded, err := mp3.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 sound effect %s: %w", path, err)
		}
		stream = decoded
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .ogg, .wav, .mp3)", ext)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read decoded sound effect %s: %w", path, err)
	}
	return pcm, nil
}

// burstDuration 合成音效时长（秒）
const burstDuration = 0.35

// SynthesizeBurst generates a decaying noise burst as 16-bit little-endian
// stereo PCM. The same seed always yields the same samples.
func SynthesizeBurst(sampleRate int, duration float64, seed int64) []byte {
	n := int(float64(sampleRate) * duration)
	if n <= 0 {
		return nil
	}

	rng := rand.New(rand.NewSource(seed))
	pcm := make([]byte, n*4)
	for i := 0; i < n; i++ {
		progress := float64(i) / float64(n)
		envelope := math.Pow(1-progress, 3)
		sample := int16((rng.Float64()*2 - 1) * envelope * 0.6 * math.MaxInt16)

		lo, hi := byte(uint16(sample)), byte(uint16(sample)>>8)
		pcm[i*4+0], pcm[i*4+1] = lo, hi // L
		pcm[i*4+2], pcm[i*4+3] = lo, hi // R
	}
	return pcm
}
