// Package scaffold turns an empty directory into a pushed repository created
// from a template.
//
// The work is modelled as a [Pipeline] of named [Step] values that run
// strictly in order:
//
//	create remote → clone template → read template manifest → copy into target
//	→ remove scratch clone → replace placeholders (per file) → git init
//	→ add remote → stage → commit → push
//
// The first failing step stops the pipeline and is reported as a
// [*StepError]. Completed steps are recorded; with CleanupOnFailure their
// undo actions run in reverse order so a failed run does not leave an
// orphaned remote repository or half-copied files behind.
//
// Nothing in this package changes the process working directory. The target
// directory is passed explicitly to every git invocation, and the scratch
// clone is removed on every exit path.
//
// # Placeholders
//
// Template files may contain the literal tokens {{REPO_NAME}},
// {{PROJECT_NAME}} and {{YEAR}}. [ReplaceAll] substitutes them in order as
// plain substrings; there is no templating language and no escaping.
package scaffold
