// Package mock provides an in-process LLMProvider for tests and offline runs.
package mock

import (
	"context"
	"fmt"
	"sync"

	"ai-brain-be/pkg/llm"
)

// Response is one scripted answer.
type Response struct {
	Text string
	Err  error
}

// Provider replays scripted responses in order. Once the script is exhausted
// it echoes the last user message.
type Provider struct {
	mu        sync.Mutex
	script    []Response
	calls     [][]llm.Message
	options   []llm.Options
	release   chan struct{}
	OnRequest func(history []llm.Message)
}

var _ llm.LLMProvider = &Provider{}

func NewProvider(script ...Response) *Provider {
	return &Provider{script: script}
}

// Block makes every Chat call wait until the returned function is called.
func (p *Provider) Block() (release func()) {
	ch := make(chan struct{})
	p.mu.Lock()
	p.release = ch
	p.mu.Unlock()
	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := llm.Options{}
	for _, o := range options {
		o(&opts)
	}

	p.mu.Lock()
	recorded := make([]llm.Message, len(history))
	copy(recorded, history)
	p.calls = append(p.calls, recorded)
	p.options = append(p.options, opts)
	release := p.release
	hook := p.OnRequest
	var next *Response
	if len(p.script) > 0 {
		next = &p.script[0]
		p.script = p.script[1:]
	}
	p.mu.Unlock()

	if hook != nil {
		hook(recorded)
	}
	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if next != nil {
		return next.Text, next.Err
	}
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == "user" {
			return fmt.Sprintf("You said: %s", history[i].Content), nil
		}
	}
	return "", nil
}

func (p *Provider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

// Calls returns the message histories received so far.
func (p *Provider) Calls() [][]llm.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([][]llm.Message, len(p.calls))
	copy(out, p.calls)
	return out
}

// LastOptions returns the options of the most recent call.
func (p *Provider) LastOptions() llm.Options {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.options) == 0 {
		return llm.Options{}
	}
	return p.options[len(p.options)-1]
}
