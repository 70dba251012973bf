// Package site defines the documentation site configuration and assembles it.
//
// The configuration is a plain value: Load builds it once from Options and
// nothing mutates it afterward. Bundler and theme are referenced by name only;
// the external site builder owns their behavior. No validation happens here,
// see package lint for the authoring checks.
package site
