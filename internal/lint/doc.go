// Package lint checks parsed documents for well-formedness: the
// front-matter contract, body structure conventions, and corpus-wide
// uniqueness of slugs and permalinks. Issues are values, not errors;
// only error-severity issues block archive admission.
package lint
