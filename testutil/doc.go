// Package testutil provides test doubles for the paygate SDK: RSA key pairs
// standing in for the remote token issuer, token signing helpers, and a
// scriptable fake of the remote pay API built on httptest.
//
//	keys := testutil.NewKeys(t)
//	tok := keys.Sign(t, claims)
//
//	api := testutil.NewFakeAPI(t)
//	api.Handle("POST /provider/acme/items", testutil.JSON(201, `{"uid":"abc123"}`))
package testutil
