// Package docs maps the navigation of a site configuration onto the Markdown
// documents it points at, and reads page titles from those documents.
package docs
