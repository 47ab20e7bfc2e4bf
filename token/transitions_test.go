package token

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"
)

func TestMint(t *testing.T) {
	l := newTestLedger(t, 0)

	if err := l.Mint(minter, bob, uint256.NewInt(500)); err != nil {
		t.Fatalf("Mint: %v", err)
	}
	if l.BalanceOf(bob).Cmp(uint256.NewInt(500)) != 0 {
		t.Errorf("BalanceOf(bob) = %s, want 500", l.BalanceOf(bob).Dec())
	}
	if l.TotalSupply().Cmp(uint256.NewInt(500)) != 0 {
		t.Errorf("TotalSupply = %s, want 500", l.TotalSupply().Dec())
	}
}

func TestMintUnauthorized(t *testing.T) {
	l := newTestLedger(t, 1000)

	err := l.Mint(bob, bob, uint256.NewInt(500))
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if l.TotalSupply().Cmp(uint256.NewInt(1000)) != 0 {
		t.Error("rejected mint changed total supply")
	}
	if !l.BalanceOf(bob).IsZero() {
		t.Error("rejected mint changed a balance")
	}
}

func TestMintWithoutAuthority(t *testing.T) {
	l, err := New(Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Mint(alice, alice, uint256.NewInt(1)); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestMintToZeroAddress(t *testing.T) {
	l := newTestLedger(t, 0)
	if err := l.Mint(minter, ZeroAddress, uint256.NewInt(1)); !errors.Is(err, ErrInvalidAccount) {
		t.Errorf("err = %v, want ErrInvalidAccount", err)
	}
	if !l.TotalSupply().IsZero() {
		t.Error("rejected mint changed total supply")
	}
}

func TestMintSupplyOverflow(t *testing.T) {
	l := newTestLedger(t, 0)
	max := new(uint256.Int).Not(uint256.NewInt(0))
	if err := l.Mint(minter, alice, max); err != nil {
		t.Fatalf("Mint(max): %v", err)
	}
	if err := l.Mint(minter, bob, uint256.NewInt(1)); !errors.Is(err, ErrOverflow) {
		t.Fatalf("err = %v, want ErrOverflow", err)
	}
	if !l.BalanceOf(bob).IsZero() {
		t.Error("rejected mint changed a balance")
	}
	if l.TotalSupply().Cmp(max) != 0 {
		t.Error("rejected mint changed total supply")
	}
}

func TestBurn(t *testing.T) {
	l := newTestLedger(t, 1000)

	if err := l.Burn(alice, uint256.NewInt(400)); err != nil {
		t.Fatalf("Burn: %v", err)
	}
	if l.BalanceOf(alice).Cmp(uint256.NewInt(600)) != 0 {
		t.Errorf("BalanceOf(alice) = %s, want 600", l.BalanceOf(alice).Dec())
	}
	if l.TotalSupply().Cmp(uint256.NewInt(600)) != 0 {
		t.Errorf("TotalSupply = %s, want 600", l.TotalSupply().Dec())
	}
}

func TestBurnInsufficientBalance(t *testing.T) {
	l := newTestLedger(t, 1000)
	err := l.Burn(alice, uint256.NewInt(1001))
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("err = %v, want ErrInsufficientBalance", err)
	}
	if l.BalanceOf(alice).Cmp(uint256.NewInt(1000)) != 0 {
		t.Error("rejected burn changed a balance")
	}
}

func TestBurnZeroAddress(t *testing.T) {
	l := newTestLedger(t, 1000)
	if err := l.Burn(ZeroAddress, uint256.NewInt(1)); !errors.Is(err, ErrInvalidAccount) {
		t.Errorf("err = %v, want ErrInvalidAccount", err)
	}
}

func TestTransfer(t *testing.T) {
	// 10000 at 0.1%: fee 10, net 9990.
	l := newTestLedger(t, 10000)

	if err := l.Transfer(alice, bob, uint256.NewInt(10000)); err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	if !l.BalanceOf(alice).IsZero() {
		t.Errorf("sender balance = %s, want 0 (gross debited)", l.BalanceOf(alice).Dec())
	}
	if l.BalanceOf(bob).Cmp(uint256.NewInt(9990)) != 0 {
		t.Errorf("recipient balance = %s, want 9990 (net credited)", l.BalanceOf(bob).Dec())
	}
	if l.TotalSupply().Cmp(uint256.NewInt(9990)) != 0 {
		t.Errorf("total supply = %s, want 9990 (fee burned)", l.TotalSupply().Dec())
	}
}

func TestTransferFeeTruncatesToZero(t *testing.T) {
	l := newTestLedger(t, 1000)

	// 999 at 0.1% floors to a zero fee; the full amount moves.
	if err := l.Transfer(alice, bob, uint256.NewInt(999)); err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	if l.BalanceOf(bob).Cmp(uint256.NewInt(999)) != 0 {
		t.Errorf("recipient balance = %s, want 999", l.BalanceOf(bob).Dec())
	}
	if l.TotalSupply().Cmp(uint256.NewInt(1000)) != 0 {
		t.Errorf("total supply = %s, want 1000 (nothing burned)", l.TotalSupply().Dec())
	}
}

func TestTransferInsufficientBalance(t *testing.T) {
	l := newTestLedger(t, 1000)

	err := l.Transfer(alice, bob, uint256.NewInt(1001))
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("err = %v, want ErrInsufficientBalance", err)
	}
	if l.BalanceOf(alice).Cmp(uint256.NewInt(1000)) != 0 {
		t.Error("rejected transfer changed the sender balance")
	}
	if !l.BalanceOf(bob).IsZero() {
		t.Error("rejected transfer changed the recipient balance")
	}
	if l.TotalSupply().Cmp(uint256.NewInt(1000)) != 0 {
		t.Error("rejected transfer changed total supply")
	}
}

func TestTransferInvalidAccounts(t *testing.T) {
	l := newTestLedger(t, 1000)
	if err := l.Transfer(ZeroAddress, bob, uint256.NewInt(1)); !errors.Is(err, ErrInvalidAccount) {
		t.Errorf("zero sender: err = %v, want ErrInvalidAccount", err)
	}
	if err := l.Transfer(alice, ZeroAddress, uint256.NewInt(1)); !errors.Is(err, ErrInvalidAccount) {
		t.Errorf("zero recipient: err = %v, want ErrInvalidAccount", err)
	}
}

func TestSelfTransfer(t *testing.T) {
	// Transferring one's full balance to oneself loses only the fee: the
	// gross debit lands before the net credit reads the balance back.
	l := newTestLedger(t, 10000)

	if err := l.Transfer(alice, alice, uint256.NewInt(10000)); err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	if l.BalanceOf(alice).Cmp(uint256.NewInt(9990)) != 0 {
		t.Errorf("balance = %s, want 9990 (only the fee left)", l.BalanceOf(alice).Dec())
	}
	if l.TotalSupply().Cmp(uint256.NewInt(9990)) != 0 {
		t.Errorf("total supply = %s, want 9990", l.TotalSupply().Dec())
	}
}

func TestApproveOverwrites(t *testing.T) {
	l := newTestLedger(t, 1000)

	if err := l.Approve(alice, bob, uint256.NewInt(10)); err != nil {
		t.Fatal(err)
	}
	if err := l.Approve(alice, bob, uint256.NewInt(20)); err != nil {
		t.Fatal(err)
	}
	if l.Allowance(alice, bob).Cmp(uint256.NewInt(20)) != 0 {
		t.Errorf("allowance = %s, want 20 (last write wins)", l.Allowance(alice, bob).Dec())
	}
}

func TestApproveInvalidAccounts(t *testing.T) {
	l := newTestLedger(t, 1000)
	if err := l.Approve(ZeroAddress, bob, uint256.NewInt(1)); !errors.Is(err, ErrInvalidAccount) {
		t.Errorf("zero owner: err = %v, want ErrInvalidAccount", err)
	}
	if err := l.Approve(alice, ZeroAddress, uint256.NewInt(1)); !errors.Is(err, ErrInvalidAccount) {
		t.Errorf("zero spender: err = %v, want ErrInvalidAccount", err)
	}
}

func TestIncreaseAllowance(t *testing.T) {
	l := newTestLedger(t, 1000)

	if err := l.Approve(alice, bob, uint256.NewInt(10)); err != nil {
		t.Fatal(err)
	}
	if err := l.IncreaseAllowance(alice, bob, uint256.NewInt(5)); err != nil {
		t.Fatal(err)
	}
	if l.Allowance(alice, bob).Cmp(uint256.NewInt(15)) != 0 {
		t.Errorf("allowance = %s, want 15", l.Allowance(alice, bob).Dec())
	}
}

func TestIncreaseAllowanceOverflow(t *testing.T) {
	l := newTestLedger(t, 1000)
	max := new(uint256.Int).Not(uint256.NewInt(0))

	if err := l.Approve(alice, bob, max); err != nil {
		t.Fatal(err)
	}
	if err := l.IncreaseAllowance(alice, bob, uint256.NewInt(1)); !errors.Is(err, ErrOverflow) {
		t.Fatalf("err = %v, want ErrOverflow", err)
	}
	if l.Allowance(alice, bob).Cmp(max) != 0 {
		t.Error("rejected increase changed the allowance")
	}
}

func TestDecreaseAllowance(t *testing.T) {
	l := newTestLedger(t, 1000)

	if err := l.Approve(alice, bob, uint256.NewInt(10)); err != nil {
		t.Fatal(err)
	}
	if err := l.DecreaseAllowance(alice, bob, uint256.NewInt(4)); err != nil {
		t.Fatal(err)
	}
	if l.Allowance(alice, bob).Cmp(uint256.NewInt(6)) != 0 {
		t.Errorf("allowance = %s, want 6", l.Allowance(alice, bob).Dec())
	}

	err := l.DecreaseAllowance(alice, bob, uint256.NewInt(7))
	if !errors.Is(err, ErrInsufficientAllowance) {
		t.Fatalf("err = %v, want ErrInsufficientAllowance", err)
	}
	if l.Allowance(alice, bob).Cmp(uint256.NewInt(6)) != 0 {
		t.Error("rejected decrease changed the allowance")
	}
}

func TestTransferFrom(t *testing.T) {
	l := newTestLedger(t, 10000)

	if err := l.Approve(alice, bob, uint256.NewInt(10000)); err != nil {
		t.Fatal(err)
	}
	if err := l.TransferFrom(bob, alice, carol, uint256.NewInt(10000)); err != nil {
		t.Fatalf("TransferFrom: %v", err)
	}
	if !l.Allowance(alice, bob).IsZero() {
		t.Errorf("allowance = %s, want 0 (gross deducted)", l.Allowance(alice, bob).Dec())
	}
	if l.BalanceOf(carol).Cmp(uint256.NewInt(9990)) != 0 {
		t.Errorf("recipient balance = %s, want 9990 (net credited)", l.BalanceOf(carol).Dec())
	}
	if !l.BalanceOf(alice).IsZero() {
		t.Errorf("owner balance = %s, want 0", l.BalanceOf(alice).Dec())
	}
}

func TestTransferFromInsufficientAllowance(t *testing.T) {
	l := newTestLedger(t, 10000)

	if err := l.Approve(alice, bob, uint256.NewInt(100)); err != nil {
		t.Fatal(err)
	}
	err := l.TransferFrom(bob, alice, carol, uint256.NewInt(101))
	if !errors.Is(err, ErrInsufficientAllowance) {
		t.Fatalf("err = %v, want ErrInsufficientAllowance", err)
	}
	if l.BalanceOf(alice).Cmp(uint256.NewInt(10000)) != 0 {
		t.Error("rejected spend changed the owner balance")
	}
	if l.Allowance(alice, bob).Cmp(uint256.NewInt(100)) != 0 {
		t.Error("rejected spend changed the allowance")
	}
}

func TestTransferFromInsufficientBalance(t *testing.T) {
	// Allowance covers the amount but the balance does not; the call must
	// fail atomically, leaving the allowance untouched.
	l := newTestLedger(t, 100)

	if err := l.Approve(alice, bob, uint256.NewInt(500)); err != nil {
		t.Fatal(err)
	}
	err := l.TransferFrom(bob, alice, carol, uint256.NewInt(200))
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("err = %v, want ErrInsufficientBalance", err)
	}
	if l.Allowance(alice, bob).Cmp(uint256.NewInt(500)) != 0 {
		t.Error("failed transfer deducted the allowance")
	}
	if l.BalanceOf(alice).Cmp(uint256.NewInt(100)) != 0 {
		t.Error("failed transfer changed the owner balance")
	}
}

func TestBurnFrom(t *testing.T) {
	l := newTestLedger(t, 1000)

	if err := l.Approve(alice, bob, uint256.NewInt(300)); err != nil {
		t.Fatal(err)
	}
	if err := l.BurnFrom(bob, alice, uint256.NewInt(300)); err != nil {
		t.Fatalf("BurnFrom: %v", err)
	}
	if l.BalanceOf(alice).Cmp(uint256.NewInt(700)) != 0 {
		t.Errorf("balance = %s, want 700", l.BalanceOf(alice).Dec())
	}
	if l.TotalSupply().Cmp(uint256.NewInt(700)) != 0 {
		t.Errorf("total supply = %s, want 700", l.TotalSupply().Dec())
	}
	if !l.Allowance(alice, bob).IsZero() {
		t.Errorf("allowance = %s, want 0", l.Allowance(alice, bob).Dec())
	}
}

func TestBurnFromInsufficientAllowance(t *testing.T) {
	l := newTestLedger(t, 1000)
	err := l.BurnFrom(bob, alice, uint256.NewInt(1))
	if !errors.Is(err, ErrInsufficientAllowance) {
		t.Fatalf("err = %v, want ErrInsufficientAllowance", err)
	}
	if l.BalanceOf(alice).Cmp(uint256.NewInt(1000)) != 0 {
		t.Error("rejected burn changed a balance")
	}
}

func TestTransferNotifications(t *testing.T) {
	l := newTestLedger(t, 10000)

	var transfers []Transfer
	var approvals []Approval
	l.Subscribe(SinkFuncs{
		Transfer: func(ev Transfer) { transfers = append(transfers, ev) },
		Approval: func(ev Approval) { approvals = append(approvals, ev) },
	})

	if err := l.Transfer(alice, bob, uint256.NewInt(10000)); err != nil {
		t.Fatal(err)
	}

	// Fee burn first, then the net move.
	if len(transfers) != 2 {
		t.Fatalf("got %d transfer notifications, want 2", len(transfers))
	}
	burn := transfers[0]
	if burn.From != alice || burn.To != ZeroAddress || burn.Amount.Cmp(uint256.NewInt(10)) != 0 {
		t.Errorf("fee burn = %v -> %v amount %s, want alice -> zero amount 10", burn.From, burn.To, burn.Amount.Dec())
	}
	move := transfers[1]
	if move.From != alice || move.To != bob || move.Amount.Cmp(uint256.NewInt(9990)) != 0 {
		t.Errorf("move = %v -> %v amount %s, want alice -> bob amount 9990", move.From, move.To, move.Amount.Dec())
	}

	if err := l.Approve(alice, bob, uint256.NewInt(5)); err != nil {
		t.Fatal(err)
	}
	if len(approvals) != 1 || approvals[0].Value.Cmp(uint256.NewInt(5)) != 0 {
		t.Errorf("approvals = %v, want one with value 5", approvals)
	}
}

func TestZeroFeeTransferSingleNotification(t *testing.T) {
	l := newTestLedger(t, 1000)

	var transfers []Transfer
	l.Subscribe(SinkFuncs{Transfer: func(ev Transfer) { transfers = append(transfers, ev) }})

	if err := l.Transfer(alice, bob, uint256.NewInt(500)); err != nil {
		t.Fatal(err)
	}
	if len(transfers) != 1 {
		t.Fatalf("got %d notifications, want 1 (no fee burn at zero fee)", len(transfers))
	}
}
