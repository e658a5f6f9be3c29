// Package middleware provides gin middleware that gates routes on pay
// entitlement tokens.
//
// The client widget sends the visitor's token in the X-PWB-Token header.
// Entitlement evaluates it for the item the route serves and stores the
// decision in the gin context; RequireEntitlement also answers 402 Payment
// Required when access is denied.
//
//	r.GET("/posts/:id", middleware.Entitlement(checker, itemFromParam), showPost)
//
//	func showPost(c *gin.Context) {
//	    if middleware.IsEntitled(c) { ... full post ... } else { ... teaser ... }
//	}
package middleware
