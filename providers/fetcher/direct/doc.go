// Package direct implements the free, credential-less retrieval strategy:
// a plain HTTP GET from this process, with bounded transport timeouts,
// redirect following, and a response-size cap. It is the first candidate
// under the cost optimization goal.
package direct
