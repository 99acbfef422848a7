package assert

// Equal checks whether expected and actual are actually equal and fails the test
// if they are not.
func Equal[V comparable](t TestingErrf, expected, actual V, msgAndArgs ...any) {
	t.Helper()

	if expected == actual {
		return
	}

	t.Errorf("not equal: expected `%#v` but got `%#v`%s",
		expected, actual, fromMsgAndArgs(msgAndArgs...),
	)
}

// SliceEqual checks that expected and actual have the same elements in the same
// order. Nil and empty slices are considered equal.
func SliceEqual[V comparable](t TestingErrf, expected, actual []V, msgAndArgs ...any) {
	t.Helper()

	if len(expected) != len(actual) {
		t.Errorf("slices differ in length: expected %d `%#v` but got %d `%#v`%s",
			len(expected), expected, len(actual), actual,
			fromMsgAndArgs(msgAndArgs...),
		)
		return
	}

	for i := range expected {
		if expected[i] == actual[i] {
			continue
		}

		t.Errorf("slices differ at index %d: expected `%#v` but got `%#v`%s",
			i, expected[i], actual[i], fromMsgAndArgs(msgAndArgs...),
		)
		return
	}
}
