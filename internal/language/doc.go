// Package language normalizes caption language tags and holds the allow-sets
// used to filter caption assets.
package language
