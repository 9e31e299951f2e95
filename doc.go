// Package silverback provides a library of code that allows the
// standard library's http.Client to pay for HTTP content and services
// using the x402 protocol, and the collaborators the Silverback agent
// builds on top of it: a typed DEX analytics facade, a discovery
// catalog client, a content template table and a posting sink.
//
// When allowing automated payments on your behalf, care should be
// taken to limit your financial exposure: the negotiator signs at most
// one authorization per logical call and never retries beyond the
// single payment round-trip.
//
// Defaults
//
//   - If the WithClient option is not specified, the http.DefaultClient
//     is used with the http.DefaultTransport.
//   - If the WithLogger Option is not specified, a No-Op logger is used.
//   - If the WithNetwork Option is not specified, payment requirements
//     are matched against the "base" network.
package silverback
