// Package llm defines the chat-completion types and provider contract used
// for clinical note generation. Concrete backends live in subpackages and
// register through the shared provider registry.
package llm
