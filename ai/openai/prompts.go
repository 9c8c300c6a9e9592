package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/medlex/ai"
)

const disambiguationResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "senses": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "term": {
            "type": "string"
          },
          "definition": {
            "type": "string"
          },
          "category": {
            "type": "string"
          },
          "usage": {
            "type": "string"
          },
          "context": {
            "type": "string"
          },
          "relevance": {
            "type": "integer",
            "minimum": 1,
            "maximum": 10
          }
        },
        "required": ["term", "definition", "category", "usage", "context", "relevance"],
        "additionalProperties": false
      }
    }
  },
  "required": ["senses"],
  "additionalProperties": false
}`

const disambiguationPromptTemplate = `You are a helpful medical assistant. Explain a potentially ambiguous medical term to a user in the language with ISO 639-1 code "%s". Return the distinct possible meanings of the term as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Return at most %d senses.
- Each sense must describe a DISTINCT meaning; do not repeat the same meaning with different wording.
- "term" is the disambiguated form of the input term (e.g. "common cold" for "cold").
- "definition" is a short definition of this sense, written in the requested language.
- "category" must match exactly one of the listed values: %s.
- "usage" is one example sentence using the term in this sense, in the requested language.
- "context" is a short description of when this sense applies, in the requested language.
- "relevance" is an integer from 1 (unlikely meaning) to 10 (most likely meaning).
- If the term has no medical meaning, return "senses": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "cold"
Output:
{
  "senses": [
    {"term":"common cold","definition":"A viral infection of the upper respiratory tract.","category":"Diagnosis","usage":"She caught a cold last week.","context":"An illness with a runny nose, sneezing and sore throat.","relevance":9},
    {"term":"cold sensation","definition":"A feeling of low temperature.","category":"Symptom","usage":"The patient reported feeling cold.","context":"A subjective feeling rather than an illness.","relevance":6}
  ]
}`

const synonymResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "synonyms": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "synonym": {
            "type": "string"
          },
          "relevance": {
            "type": "number",
            "minimum": 0,
            "maximum": 1
          }
        },
        "required": ["synonym", "relevance"],
        "additionalProperties": false
      }
    }
  },
  "required": ["synonyms"],
  "additionalProperties": false
}`

const synonymPromptTemplate = `You are a medical language expert. Generate up to %d synonyms for the given medical term in the language with ISO 639-1 code "%s". Provide each synonym with a relevance score between 0 and 1, where 1 is highly relevant and 0 is less relevant.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Synonyms must preserve the meaning given by the usage context, not other senses of the term.
- Include both lay and clinical forms when they exist (e.g. "head cold" and "acute coryza").
- Do not include the input term itself.
- If no synonyms exist, return "synonyms": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "common cold"
Output:
{
  "synonyms": [
    {"synonym":"head cold","relevance":0.9},
    {"synonym":"acute coryza","relevance":0.8},
    {"synonym":"upper respiratory infection","relevance":0.6}
  ]
}`

const languageResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "code": {
      "type": "string",
      "pattern": "^[a-z]{2}$"
    },
    "name": {
      "type": "string"
    },
    "native_name": {
      "type": "string"
    }
  },
  "required": ["code", "name", "native_name"],
  "additionalProperties": false
}`

const languagePromptTemplate = `You are a language identification expert. Given the name of a natural language in any form (an English name, an endonym, or an ISO code), return its canonical identity as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- "code" is the two-letter lowercase ISO 639-1 code.
- "name" is the English name of the language.
- "native_name" is the name of the language in the language itself.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "polski"
Output:
{"code":"pl","name":"Polish","native_name":"Polski"}`

// buildDisambiguationPrompt creates the system prompt for sense disambiguation.
func buildDisambiguationPrompt(language string, maxSenses int) string {
	return fmt.Sprintf(disambiguationPromptTemplate,
		language,
		disambiguationResponseSchema,
		maxSenses,
		strings.Join(ai.SenseCategories, ", "))
}

// buildSynonymPrompt creates the system prompt for synonym generation.
func buildSynonymPrompt(language string, maxSynonyms int) string {
	return fmt.Sprintf(synonymPromptTemplate,
		maxSynonyms,
		language,
		synonymResponseSchema)
}

// buildLanguagePrompt creates the system prompt for language inference.
func buildLanguagePrompt() string {
	return fmt.Sprintf(languagePromptTemplate, languageResponseSchema)
}
