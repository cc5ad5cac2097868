// Package gitattr implements gitignore(5)/gitattributes(5) pattern
// matching and attribute resolution as a standalone core
// (internal/gitcore) fronted by this thin public API.
//
// CompileIgnoreRuleFile and CompileAttributesRuleFile parse a single
// rule file's text. IgnoreEngine and AttributesEngine combine a
// repository's info/per-directory/global rule files into the
// cascading decisions and attribute maps described in gitignore(5) and
// gitattributes(5). internal/fsrules supplies a filesystem-backed
// RuleSource, global rule-file resolution, and an fsnotify watcher that
// keeps an engine's caches fresh as rule files change on disk.
package gitattr
