// Package pipeline holds the text stages of the slide build:
//   - Scan finds asset references (src, CSS url(), data href) with their byte spans
//   - ApplyEdits rewrites those spans without touching identical text elsewhere
//   - FirstHeading extracts a slide title with the x/net/html tokenizer
//   - GoldmarkRenderer turns Markdown slides into HTML fragments
//
// Asset resolution, naming and image transcoding live in the root package;
// this package never touches the filesystem.
package pipeline
