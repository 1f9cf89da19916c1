// Package zenrows implements the proxy-api retrieval strategy using the
// ZenRows residential-proxy scraping service, the most expensive and most
// reliable of the three backends.
//
// Requires the ZENROWS_API_KEY environment variable.
package zenrows
