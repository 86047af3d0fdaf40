// Package provider turns a text prompt into image bytes.
//
// Two strategies implement Generator:
//
//   - Hosted posts the prompt to the first-party proxy, which answers with a
//     URL; the image is then fetched from that URL. No credentials needed.
//   - Direct calls the OpenAI images API with a local API key and asks for the
//     image inline as base64.
//
// New picks one per call from the useHostedApi flag. Every failure, whether an
// HTTP status, a malformed body, or a missing image, is returned as a
// *ProviderError. Nothing is retried and no timeout is applied beyond what the
// caller's context and http.Client impose.
package provider
