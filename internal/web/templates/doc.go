// Package templates renders the dashboard's HTML as templ components.
//
// Every interactive control is a plain form that works without
// JavaScript (the server answers with a redirect). With static/app.js
// loaded, forms carrying hx-post are submitted in the background and the
// element named by hx-target is swapped with the returned fragment.
//
// The *_templ.go files are generated: run `templ generate` (v0.3.960) at
// the module root after editing a .templ file.
package templates
