// Package scaffold orchestrates the three generation flows (domain, verb,
// class) on top of target resolution and template substitution. It computes
// destination paths under deterministic naming rules, never overwrites
// existing artifacts, creates package marker files, and reports a tagged
// success/warning outcome consumed by the command layer.
package scaffold
