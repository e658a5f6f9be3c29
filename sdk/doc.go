// Package sdk bundles the paygate components for one provider into a single
// immutable instance.
//
// A host builds one SDK at startup and passes it by reference to every call
// site; there is no process-wide instance. All methods are safe for
// concurrent use.
//
//	cfg, _ := config.Load("blog")
//	pay, err := sdk.FromSettings(cfg.Pay, sdk.WithLogger(log))
//	if err != nil { ... }
//	defer pay.Close()
//
//	entitled := pay.IsEntitled(post.Item(), c.GetHeader(middleware.TokenHeader))
package sdk
