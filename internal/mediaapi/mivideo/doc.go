// Package mivideo implements the media platform client for the MiVideo API
// gateway, which fronts Kaltura with OAuth2 authorization and server-side
// course/user access control.
package mivideo
