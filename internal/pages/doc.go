// Package pages writes the HTML files of a site: one page per content item,
// one listing per category and the home page.
//
// All generators share a Context and the same shape: the theme layout is run
// through the posts-block processor once, then every output unit substitutes
// its title, the navbar and its content into the processed layout. A failure
// local to one unit is reported to the Sink and generation carries on.
package pages
