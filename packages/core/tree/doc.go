// Package tree defines the spec tree executed by the runner.
//
// A tree is a hierarchy of contexts (named groupings) holding specs
// (executable cases) and nested child contexts. Each context carries four
// optional hook slots: BeforeAll/AfterAll fire once per context,
// BeforeEach/AfterEach fire once per spec through the hook cascade.
//
// Trees are built by an external discovery or declaration layer and must
// not be mutated once a run begins.
package tree
