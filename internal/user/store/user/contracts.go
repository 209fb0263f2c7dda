package user

// Error Contract:
// - FindByWallet returns sentinel.ErrNotFound when no user owns the wallet.
// - Save returns sentinel.ErrAlreadyExists when the wallet is taken.
// - Infrastructure failures are returned wrapped with context.
