// Package speech reads dictionary text aloud through the platform's
// speech engine.
package speech

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ErrNoEngine is returned when no supported speech command is installed.
var ErrNoEngine = errors.New("no speech engine found (install espeak-ng, or use macOS say)")

// Runner executes an external command. Tests swap in a recorder.
type Runner interface {
	LookPath(name string) (string, error)
	Run(ctx context.Context, name string, args ...string) error
}

type execRunner struct{}

func (execRunner) LookPath(name string) (string, error) { return exec.LookPath(name) }

func (execRunner) Run(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// engines in detection order.
var engines = []string{"say", "espeak-ng", "espeak"}

// fallbacks maps a language with sparse voice coverage to a close one.
var fallbacks = map[string]string{
	"ca": "es",
}

// Speaker speaks text with one engine.
type Speaker struct {
	engine string
	rate   float64
	runner Runner
}

// New picks an engine. An empty command auto-detects; rate 1 is the
// engine's normal speed.
func New(command string, rate float64) (*Speaker, error) {
	return newWithRunner(execRunner{}, command, rate)
}

func newWithRunner(r Runner, command string, rate float64) (*Speaker, error) {
	if rate <= 0 {
		rate = 1
	}
	candidates := engines
	if command != "" {
		candidates = []string{command}
	}
	for _, name := range candidates {
		if _, err := r.LookPath(name); err == nil {
			return &Speaker{engine: name, rate: rate, runner: r}, nil
		}
	}
	if command != "" {
		return nil, fmt.Errorf("%w: %q is not on PATH", ErrNoEngine, command)
	}
	return nil, ErrNoEngine
}

// Engine returns the command in use.
func (s *Speaker) Engine() string {
	return s.engine
}

// Say speaks text in lang (a BCP 47 tag such as "ca" or "en-US"). When the
// engine has no voice for lang, a close language is tried before giving up.
func (s *Speaker) Say(ctx context.Context, text, lang string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	err := s.runner.Run(ctx, s.engine, s.args(text, lang)...)
	if err == nil || ctx.Err() != nil {
		return err
	}
	if fb, ok := fallbacks[baseLanguage(lang)]; ok {
		if ferr := s.runner.Run(ctx, s.engine, s.args(text, fb)...); ferr == nil {
			return nil
		}
	}
	return fmt.Errorf("%s: %w", s.engine, err)
}

// args ends options with "--" so text starting with a dash is spoken, not
// parsed as a flag.
func (s *Speaker) args(text, lang string) []string {
	base := baseLanguage(lang)
	switch s.engine {
	case "say":
		// say has no language flag; voices are selected by name.
		args := []string{"-r", strconv.Itoa(int(175 * s.rate))}
		if v, ok := sayVoices[base]; ok {
			args = append(args, "-v", v)
		}
		return append(args, "--", text)
	default:
		args := []string{"-s", strconv.Itoa(int(175 * s.rate))}
		if base != "" {
			args = append(args, "-v", base)
		}
		return append(args, "--", text)
	}
}

// sayVoices are stock macOS voices per language.
var sayVoices = map[string]string{
	"en": "Samantha",
	"es": "Monica",
	"ca": "Montse",
}

func baseLanguage(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		tag = tag[:i]
	}
	return tag
}
