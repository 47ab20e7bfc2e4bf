package token

import "github.com/holiman/uint256"

// Mint creates amount new tokens in account, growing total supply by the
// same amount. The caller must be admitted by the ledger's mint authority;
// rejection happens before any state is read or written.
func (l *Ledger) Mint(caller, account Address, amount *uint256.Int) error {
	if l.minter == nil || !l.minter.AllowMint(caller) {
		return ErrUnauthorized
	}
	if account.IsZero() {
		return ErrInvalidAccount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mint(account, amount)
}

// mint credits account and grows supply. Callers hold the write lock, except
// during construction where the ledger is not yet shared.
func (l *Ledger) mint(account Address, amount *uint256.Int) error {
	newSupply, overflow := new(uint256.Int).AddOverflow(&l.supply, amount)
	if overflow {
		return ErrOverflow
	}
	// The account balance cannot wrap when supply does not: conservation
	// keeps every balance at or below total supply.
	l.supply.Set(newSupply)
	l.balances[account] = new(uint256.Int).Add(l.balance(account), amount)
	l.notifyTransfer(Transfer{
		From:   ZeroAddress,
		To:     account,
		Amount: new(uint256.Int).Set(amount),
	})
	return nil
}

// Burn destroys amount tokens held by account, shrinking total supply by the
// same amount.
func (l *Ledger) Burn(account Address, amount *uint256.Int) error {
	if account.IsZero() {
		return ErrInvalidAccount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.burn(account, amount)
}

func (l *Ledger) burn(account Address, amount *uint256.Int) error {
	bal := l.balance(account)
	if bal.Lt(amount) {
		return ErrInsufficientBalance
	}
	l.balances[account] = new(uint256.Int).Sub(bal, amount)
	l.supply.Sub(&l.supply, amount)
	l.notifyTransfer(Transfer{
		From:   account,
		To:     ZeroAddress,
		Amount: new(uint256.Int).Set(amount),
	})
	return nil
}

// Transfer moves amount from sender to recipient, burning the fee portion
// from total supply. The sender pays the gross amount, the recipient
// receives the net: after a successful call the sender's balance has dropped
// by amount, the recipient's has grown by amount - fee, and total supply has
// dropped by fee.
//
// Two notifications fire: the fee burn (to ZeroAddress, skipped when the fee
// floors to zero) and then the net move.
func (l *Ledger) Transfer(sender, recipient Address, amount *uint256.Int) error {
	if sender.IsZero() || recipient.IsZero() {
		return ErrInvalidAccount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.transfer(sender, recipient, amount)
}

// transfer applies the fee-on-transfer transition as one mutation: debit the
// gross amount from the sender, credit the net to the recipient, subtract
// the fee from supply. fee <= amount always holds (the rate is below the
// scale and the division truncates), so the single balance check covers the
// fee burn as well and the fee is never deducted twice.
//
// The recipient credit reads the already-debited table, so a self-transfer
// nets out to exactly the fee leaving the account.
func (l *Ledger) transfer(sender, recipient Address, amount *uint256.Int) error {
	fee, net, err := feeOn(amount, &l.feeRate)
	if err != nil {
		return err
	}
	bal := l.balance(sender)
	if bal.Lt(amount) {
		return ErrInsufficientBalance
	}
	l.balances[sender] = new(uint256.Int).Sub(bal, amount)
	l.balances[recipient] = new(uint256.Int).Add(l.balance(recipient), net)
	l.supply.Sub(&l.supply, fee)

	if !fee.IsZero() {
		l.notifyTransfer(Transfer{From: sender, To: ZeroAddress, Amount: fee})
	}
	l.notifyTransfer(Transfer{From: sender, To: recipient, Amount: net})
	return nil
}

// Approve overwrites the allowance of spender over owner's tokens. The write
// is unconditional: lowering an allowance below an in-flight spend is the
// owner's prerogative.
func (l *Ledger) Approve(owner, spender Address, value *uint256.Int) error {
	if owner.IsZero() || spender.IsZero() {
		return ErrInvalidAccount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.setAllowance(owner, spender, new(uint256.Int).Set(value))
	l.notifyApproval(Approval{
		Owner:   owner,
		Spender: spender,
		Value:   new(uint256.Int).Set(value),
	})
	return nil
}

// IncreaseAllowance raises the allowance of spender over owner's tokens by
// delta, failing with ErrOverflow if the new value would wrap.
func (l *Ledger) IncreaseAllowance(owner, spender Address, delta *uint256.Int) error {
	if owner.IsZero() || spender.IsZero() {
		return ErrInvalidAccount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	next, overflow := new(uint256.Int).AddOverflow(l.allowance(owner, spender), delta)
	if overflow {
		return ErrOverflow
	}
	l.setAllowance(owner, spender, next)
	l.notifyApproval(Approval{
		Owner:   owner,
		Spender: spender,
		Value:   new(uint256.Int).Set(next),
	})
	return nil
}

// DecreaseAllowance lowers the allowance of spender over owner's tokens by
// delta, failing with ErrInsufficientAllowance if delta exceeds the current
// allowance.
func (l *Ledger) DecreaseAllowance(owner, spender Address, delta *uint256.Int) error {
	if owner.IsZero() || spender.IsZero() {
		return ErrInvalidAccount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	cur := l.allowance(owner, spender)
	if cur.Lt(delta) {
		return ErrInsufficientAllowance
	}
	next := new(uint256.Int).Sub(cur, delta)
	l.setAllowance(owner, spender, next)
	l.notifyApproval(Approval{
		Owner:   owner,
		Spender: spender,
		Value:   new(uint256.Int).Set(next),
	})
	return nil
}

// TransferFrom moves amount from sender to recipient on spender's authority,
// deducting the gross amount (not the net) from the allowance. The allowance
// is checked before the balances move, so a short allowance rejects the call
// with no state change at all.
func (l *Ledger) TransferFrom(spender, sender, recipient Address, amount *uint256.Int) error {
	if spender.IsZero() || sender.IsZero() || recipient.IsZero() {
		return ErrInvalidAccount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	cur := l.allowance(sender, spender)
	if cur.Lt(amount) {
		return ErrInsufficientAllowance
	}
	if err := l.transfer(sender, recipient, amount); err != nil {
		return err
	}
	next := new(uint256.Int).Sub(cur, amount)
	l.setAllowance(sender, spender, next)
	l.notifyApproval(Approval{
		Owner:   sender,
		Spender: spender,
		Value:   new(uint256.Int).Set(next),
	})
	return nil
}

// BurnFrom destroys amount tokens held by account on caller's authority,
// deducting amount from the allowance under the same ordering rule as
// TransferFrom.
func (l *Ledger) BurnFrom(caller, account Address, amount *uint256.Int) error {
	if caller.IsZero() || account.IsZero() {
		return ErrInvalidAccount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	cur := l.allowance(account, caller)
	if cur.Lt(amount) {
		return ErrInsufficientAllowance
	}
	if err := l.burn(account, amount); err != nil {
		return err
	}
	next := new(uint256.Int).Sub(cur, amount)
	l.setAllowance(account, caller, next)
	l.notifyApproval(Approval{
		Owner:   account,
		Spender: caller,
		Value:   new(uint256.Int).Set(next),
	})
	return nil
}
