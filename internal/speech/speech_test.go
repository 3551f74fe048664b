package speech

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	installed map[string]bool
	failLang  map[string]bool
	calls     [][]string
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if f.installed[name] {
		return "/usr/bin/" + name, nil
	}
	return "", errors.New("not found")
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	f.calls = append(f.calls, append([]string{name}, args...))
	for i, a := range args {
		if a == "-v" && i+1 < len(args) && f.failLang[args[i+1]] {
			return errors.New("no voice")
		}
	}
	return nil
}

func TestDetectOrder(t *testing.T) {
	r := &fakeRunner{installed: map[string]bool{"espeak": true, "espeak-ng": true}}
	s, err := newWithRunner(r, "", 0.9)
	require.NoError(t, err)
	assert.Equal(t, "espeak-ng", s.Engine())
}

func TestNoEngine(t *testing.T) {
	_, err := newWithRunner(&fakeRunner{}, "", 1)
	assert.ErrorIs(t, err, ErrNoEngine)

	_, err = newWithRunner(&fakeRunner{installed: map[string]bool{"say": true}}, "festival", 1)
	assert.ErrorIs(t, err, ErrNoEngine)
}

func TestSay_Espeak(t *testing.T) {
	r := &fakeRunner{installed: map[string]bool{"espeak-ng": true}}
	s, err := newWithRunner(r, "", 0.9)
	require.NoError(t, err)

	require.NoError(t, s.Say(context.Background(), " Bou embolat ", "ca-ES"))
	require.Len(t, r.calls, 1)
	assert.Equal(t, []string{"espeak-ng", "-s", "157", "-v", "ca", "--", "Bou embolat"}, r.calls[0])
}

func TestSay_FallsBackToSpanish(t *testing.T) {
	r := &fakeRunner{
		installed: map[string]bool{"espeak-ng": true},
		failLang:  map[string]bool{"ca": true},
	}
	s, err := newWithRunner(r, "", 1)
	require.NoError(t, err)

	require.NoError(t, s.Say(context.Background(), "Encantat", "ca"))
	require.Len(t, r.calls, 2)
	assert.Equal(t, "es", r.calls[1][4])
}

func TestSay_NoFallbackForEnglish(t *testing.T) {
	r := &fakeRunner{
		installed: map[string]bool{"espeak-ng": true},
		failLang:  map[string]bool{"en": true},
	}
	s, err := newWithRunner(r, "", 1)
	require.NoError(t, err)

	err = s.Say(context.Background(), "hello", "en-US")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "espeak-ng:"))
	assert.Len(t, r.calls, 1)
}

func TestSay_MacVoices(t *testing.T) {
	r := &fakeRunner{installed: map[string]bool{"say": true}}
	s, err := newWithRunner(r, "say", 1)
	require.NoError(t, err)

	require.NoError(t, s.Say(context.Background(), "hola", "es"))
	assert.Equal(t, []string{"say", "-r", "175", "-v", "Monica", "--", "hola"}, r.calls[0])
}

func TestSay_DashTextIsNotAnOption(t *testing.T) {
	for _, engine := range []string{"espeak-ng", "say"} {
		t.Run(engine, func(t *testing.T) {
			r := &fakeRunner{installed: map[string]bool{engine: true}}
			s, err := newWithRunner(r, engine, 1)
			require.NoError(t, err)

			require.NoError(t, s.Say(context.Background(), "-w /tmp/x.wav", "en"))
			require.Len(t, r.calls, 1)
			args := r.calls[0]
			require.GreaterOrEqual(t, len(args), 2)
			assert.Equal(t, "--", args[len(args)-2])
			assert.Equal(t, "-w /tmp/x.wav", args[len(args)-1])
		})
	}
}

func TestSay_BlankIsNoop(t *testing.T) {
	r := &fakeRunner{installed: map[string]bool{"espeak": true}}
	s, err := newWithRunner(r, "", 1)
	require.NoError(t, err)
	require.NoError(t, s.Say(context.Background(), "   ", "en"))
	assert.Empty(t, r.calls)
}
