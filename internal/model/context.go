package model

// contextKey はコンテキスト格納用のキー型（衝突防止のため非公開型）
type contextKey string

// OwnerIDKey は認証済みオーナーIDをリクエストコンテキストに格納するキー
const OwnerIDKey contextKey = "owner_id"
