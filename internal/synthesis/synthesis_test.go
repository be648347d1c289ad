package synthesis

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nguyentantai21042004/podcast2podcast/internal/chunker"
	"github.com/nguyentantai21042004/podcast2podcast/internal/logger"
	"github.com/nguyentantai21042004/podcast2podcast/internal/retry"
	"github.com/nguyentantai21042004/podcast2podcast/pkg/executor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fastRetry = retry.Policy{Attempts: 3, Base: 1, Unit: time.Millisecond}

const longSentence = "It was the best of times, it was the worst of times, it was the age of wisdom, " +
	"it was the age of foolishness, it was the epoch of belief, it was the epoch of " +
	"incredulity, it was the season of light, it was the season of darkness, it was " +
	"the spring of hope, it was the winter of despair."

func newMockSynthesizer(ctrl *gomock.Controller, format string) *MockSynthesizer {
	synth := NewMockSynthesizer(ctrl)
	synth.EXPECT().Name().Return("fake").AnyTimes()
	synth.EXPECT().Format().Return(format).AnyTimes()
	return synth
}

func TestDispatcherChunksAndConcatenates(t *testing.T) {
	ctrl := gomock.NewController(t)
	synth := newMockSynthesizer(ctrl, FormatMP3)

	var chunks []string
	synth.EXPECT().Synthesize(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, text string) ([]byte, error) {
		chunks = append(chunks, text)
		return []byte("[" + text[:2] + "]"), nil
	}).AnyTimes()

	d := New(synth, logger.NewNop(), Options{MaxWords: 25, Retry: fastRetry})
	audio, err := d.Synthesize(context.Background(), "Hello there. "+longSentence)

	require.NoError(t, err)
	require.Greater(t, len(chunks), 2)
	assert.Equal(t, "Hello there.", chunks[0])
	for _, c := range chunks {
		assert.LessOrEqual(t, chunker.Words(c), 25, c)
	}
	assert.Equal(t, strings.Join(strings.Fields("Hello there. "+longSentence), " "), strings.Join(chunks, " "))

	var want strings.Builder
	for _, c := range chunks {
		want.WriteString("[" + c[:2] + "]")
	}
	assert.Equal(t, want.String(), string(audio.Data))
	assert.Equal(t, FormatMP3, audio.Format)
}

func TestDispatcherRetriesBackendErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	synth := newMockSynthesizer(ctrl, FormatMP3)

	cause := errors.New("503")
	gomock.InOrder(
		synth.EXPECT().Synthesize(gomock.Any(), "Hi.").Return(nil, cause),
		synth.EXPECT().Synthesize(gomock.Any(), "Hi.").Return([]byte("ok"), nil),
	)

	audio, err := New(synth, logger.NewNop(), Options{Retry: fastRetry}).Synthesize(context.Background(), "Hi.")
	require.NoError(t, err)
	assert.Equal(t, "ok", string(audio.Data))
}

func TestDispatcherGivesUpAfterAttempts(t *testing.T) {
	ctrl := gomock.NewController(t)
	synth := NewMockSynthesizer(ctrl)
	synth.EXPECT().Name().Return("fake").AnyTimes()

	cause := errors.New("503")
	synth.EXPECT().Synthesize(gomock.Any(), "Hi.").Return(nil, cause).Times(3)

	_, err := New(synth, logger.NewNop(), Options{Retry: fastRetry}).Synthesize(context.Background(), "Hi.")

	var synthErr *Error
	require.ErrorAs(t, err, &synthErr)
	assert.Equal(t, 0, synthErr.Chunk)
	assert.ErrorIs(t, err, cause)
}

func TestDispatcherChunkingExhausted(t *testing.T) {
	ctrl := gomock.NewController(t)
	synth := NewMockSynthesizer(ctrl)
	synth.EXPECT().Name().Return("fake").AnyTimes()
	synth.EXPECT().Synthesize(gomock.Any(), gomock.Any()).Return(nil, ErrTextTooLong).Times(1)

	_, err := New(synth, logger.NewNop(), Options{Retry: fastRetry}).Synthesize(context.Background(), "Supercalifragilistic.")

	var exhausted *ChunkingExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, "Supercalifragilistic.", exhausted.Chunk)
	assert.Equal(t, 1, exhausted.Words)
	assert.ErrorIs(t, err, ErrTextTooLong)
}

func TestDispatcherEmptyTranscript(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, err := New(NewMockSynthesizer(ctrl), logger.NewNop(), Options{}).Synthesize(context.Background(), " ")
	assert.ErrorIs(t, err, ErrNothingToSay)
}

// wavSegment builds a 16-bit mono PCM WAV holding n samples of value.
func wavSegment(n int, value byte) []byte {
	data := bytes.Repeat([]byte{value, 0}, n)
	header := make([]byte, 44)
	copy(header[0:], "RIFF")
	binary.LittleEndian.PutUint32(header[4:], uint32(36+len(data)))
	copy(header[8:], "WAVEfmt ")
	binary.LittleEndian.PutUint32(header[16:], 16)
	binary.LittleEndian.PutUint16(header[20:], 1)
	binary.LittleEndian.PutUint16(header[22:], 1)
	binary.LittleEndian.PutUint32(header[24:], 16000)
	binary.LittleEndian.PutUint32(header[28:], 32000)
	binary.LittleEndian.PutUint16(header[32:], 2)
	binary.LittleEndian.PutUint16(header[34:], 16)
	copy(header[36:], "data")
	binary.LittleEndian.PutUint32(header[40:], uint32(len(data)))
	return append(header, data...)
}

func wavDataSize(t *testing.T, wav []byte) int {
	t.Helper()
	require.GreaterOrEqual(t, len(wav), 44)
	require.Equal(t, "RIFF", string(wav[0:4]))
	require.Equal(t, "data", string(wav[36:40]))
	return int(binary.LittleEndian.Uint32(wav[40:44]))
}

func TestDispatcherJoinsWavSegments(t *testing.T) {
	ctrl := gomock.NewController(t)
	synth := newMockSynthesizer(ctrl, "wav")

	var calls byte
	synth.EXPECT().Synthesize(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, string) ([]byte, error) {
		calls++
		return wavSegment(1000, calls), nil
	}).Times(3)

	// stands in for ffmpeg: reads the concat list and rebuilds one WAV
	exec := executor.NewMockExecutor(ctrl)
	exec.EXPECT().
		Execute(gomock.Any(), "ffmpeg", "-f", "concat", "-safe", "0", "-i", gomock.Any(), "-c", "copy", "-y", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, args ...string) (string, error) {
			list, err := os.ReadFile(args[5])
			require.NoError(t, err)

			var samples []byte
			for i, line := range strings.Split(strings.TrimSpace(string(list)), "\n") {
				name := strings.Trim(strings.TrimPrefix(line, "file "), "'")
				assert.Equal(t, fmt.Sprintf("segment-%04d.wav", i), name)

				segment, err := os.ReadFile(filepath.Join(filepath.Dir(args[5]), name))
				require.NoError(t, err)
				assert.Equal(t, 2000, wavDataSize(t, segment))
				samples = append(samples, segment[44:]...)
			}

			joined := wavSegment(len(samples)/2, 0)
			copy(joined[44:], samples)
			return "", os.WriteFile(args[9], joined, 0644)
		})

	tempDir := t.TempDir()
	d := New(synth, logger.NewNop(), Options{
		Retry:  fastRetry,
		Joiner: NewFFmpegJoiner(exec, "ffmpeg", tempDir),
	})
	audio, err := d.Synthesize(context.Background(), "One. Two. Three.")

	require.NoError(t, err)
	assert.Equal(t, "wav", audio.Format)
	assert.Equal(t, 6000, wavDataSize(t, audio.Data))
	assert.Equal(t, byte(1), audio.Data[44])
	assert.Equal(t, byte(2), audio.Data[44+2000])
	assert.Equal(t, byte(3), audio.Data[44+4000])

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDispatcherNeedsJoinerForContainers(t *testing.T) {
	ctrl := gomock.NewController(t)
	synth := newMockSynthesizer(ctrl, "wav")
	synth.EXPECT().Synthesize(gomock.Any(), gomock.Any()).Return(wavSegment(10, 1), nil).Times(2)

	_, err := New(synth, logger.NewNop(), Options{Retry: fastRetry}).Synthesize(context.Background(), "One. Two.")
	assert.ErrorContains(t, err, "no joiner configured")
}

func TestDispatcherSingleSegmentSkipsJoiner(t *testing.T) {
	ctrl := gomock.NewController(t)
	synth := newMockSynthesizer(ctrl, "aiff")
	synth.EXPECT().Synthesize(gomock.Any(), "Only one.").Return([]byte("FORMfake"), nil)

	audio, err := New(synth, logger.NewNop(), Options{Retry: fastRetry, Joiner: NewMockJoiner(ctrl)}).Synthesize(context.Background(), "Only one.")
	require.NoError(t, err)
	assert.Equal(t, Audio{Data: []byte("FORMfake"), Format: "aiff"}, audio)
}

func TestOpenAISynthesizer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/speech", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "tts-1", body["model"])
		assert.Equal(t, "onyx", body["voice"])
		assert.Equal(t, "Hello.", body["input"])
		assert.Equal(t, "mp3", body["response_format"])

		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("ID3fake"))
	}))
	defer server.Close()

	s := NewOpenAISynthesizer(OpenAIConfig{APIKey: "k", BaseURL: server.URL + "/v1"})
	audio, err := s.Synthesize(context.Background(), "Hello.")

	require.NoError(t, err)
	assert.Equal(t, "ID3fake", string(audio))
	assert.Equal(t, FormatMP3, s.Format())
}

func TestOpenAISynthesizerTooLong(t *testing.T) {
	s := NewOpenAISynthesizer(OpenAIConfig{APIKey: "k", BaseURL: "http://127.0.0.1:1/v1"})
	_, err := s.Synthesize(context.Background(), strings.Repeat("a", openAIMaxChars+1))
	assert.ErrorIs(t, err, ErrTextTooLong)
}

func TestCommandSynthesizer(t *testing.T) {
	ctrl := gomock.NewController(t)
	exec := executor.NewMockExecutor(ctrl)
	exec.EXPECT().
		Execute(gomock.Any(), "say", "-o", gomock.Any(), "Hello there.").
		DoAndReturn(func(_ context.Context, _ string, args ...string) (string, error) {
			assert.Equal(t, ".aiff", filepath.Ext(args[1]))
			return "", os.WriteFile(args[1], []byte("FORMfake"), 0644)
		})

	s := NewCommandSynthesizer(exec, CommandConfig{
		Command: "say",
		Args:    []string{"-o", "{output}", "{text}"},
		Format:  ".AIFF",
		TempDir: t.TempDir(),
	})
	audio, err := s.Synthesize(context.Background(), "Hello there.")

	require.NoError(t, err)
	assert.Equal(t, "FORMfake", string(audio))
	assert.Equal(t, "say", s.Name())
	assert.Equal(t, "aiff", s.Format())

	assert.Equal(t, "wav", NewCommandSynthesizer(exec, CommandConfig{Command: "piper"}).Format())
}

func TestCommandSynthesizerErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	exec := executor.NewMockExecutor(ctrl)

	s := NewCommandSynthesizer(exec, CommandConfig{Command: "tts", Args: []string{"{text}", "{output}"}, TempDir: t.TempDir(), MaxChars: 5})
	_, err := s.Synthesize(context.Background(), "too long text")
	assert.ErrorIs(t, err, ErrTextTooLong)

	cause := errors.New("exit status 1")
	exec.EXPECT().Execute(gomock.Any(), "tts", "Hi.", gomock.Any()).Return("", cause)
	_, err = s.Synthesize(context.Background(), "Hi.")
	assert.ErrorIs(t, err, cause)

	exec.EXPECT().Execute(gomock.Any(), "tts", "Hi.", gomock.Any()).Return("", nil)
	_, err = s.Synthesize(context.Background(), "Hi.")
	assert.ErrorContains(t, err, "wrote no audio")
}
