/*
Package navigation runs the lifecycle of moving from one location in the dashboard to another.

A Navigator resolves the target path against a [router.Table],
follows route redirects, then runs its hooks in order before committing.
Each [Hook] decides through its [Next] continuation whether the navigation proceeds,
is cancelled, or is redirected elsewhere.
Once committed, the matched view loads on its own goroutine behind a [Pending].

The dashboard registers two hooks on every Navigator:

	nav := navigation.NewNavigator(table, navigation.WithHooks(
		navigation.Title(navigation.AppName),
		navigation.Log(log),
	))
*/
package navigation
