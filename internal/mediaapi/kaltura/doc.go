// Package kaltura implements the alternate media platform client that talks
// directly to the Kaltura api_v3 gateway with a pre-established session
// token, scoping media through the course's category path.
package kaltura
