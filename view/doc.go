/*
Package view locates the client-side views of the dashboard.

The views themselves - CoinsList, CoinDetail and AdminPanel - are Vue components
bundled by Vite into hashed chunks under client/dist/assets.
A [Loader] defers finding a view's chunk until a route pointing to it is navigated to;
nothing is read while the route table is built.

[Lazy] memoizes a successful load and shares one in-flight load
between concurrent navigations to the same view.
A failed load is not remembered; the next navigation tries again.
*/
package view
