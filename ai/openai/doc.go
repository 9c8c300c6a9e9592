// Package openai implements the ai service interfaces using OpenAI-compatible
// chat APIs via langchaingo.
//
// All services share the same request discipline: JSON mode with temperature
// 0, markdown fence stripping, best-effort JSON repair, and up to 3 parse
// retries. Transport failures and parse exhaustion wrap
// core.ErrInferenceUnavailable.
//
// The package works with any OpenAI-compatible endpoint (Ollama, LocalAI,
// vLLM, OpenAI itself). Authentication uses the token "none" for local
// services that don't require it.
package openai
