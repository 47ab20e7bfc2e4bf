package proof

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-feetoken/token"
)

// ErrSameAccount rejects observations of self-transfers, which the two
// account circuit does not model.
var ErrSameAccount = errors.New("proof: sender and recipient must differ")

// Observation captures the public and private facts of one transfer.
type Observation struct {
	PreSender     *uint256.Int
	PostSender    *uint256.Int
	PreRecipient  *uint256.Int
	PostRecipient *uint256.Int
	PreSupply     *uint256.Int
	PostSupply    *uint256.Int
	Amount        *uint256.Int
	Fee           *uint256.Int
}

// Observe runs a transfer against the ledger and captures the surrounding
// state for proving. The transfer itself is the ledger's ordinary Transfer;
// a failed transfer leaves the ledger untouched and returns its error.
func Observe(l *token.Ledger, sender, recipient token.Address, amount *uint256.Int) (*Observation, error) {
	if sender == recipient {
		return nil, ErrSameAccount
	}
	fee, _, err := l.FeeOn(amount)
	if err != nil {
		return nil, err
	}

	o := &Observation{
		PreSender:    l.BalanceOf(sender),
		PreRecipient: l.BalanceOf(recipient),
		PreSupply:    l.TotalSupply(),
		Amount:       new(uint256.Int).Set(amount),
		Fee:          fee,
	}
	if err := l.Transfer(sender, recipient, amount); err != nil {
		return nil, err
	}
	o.PostSender = l.BalanceOf(sender)
	o.PostRecipient = l.BalanceOf(recipient)
	o.PostSupply = l.TotalSupply()
	return o, nil
}

// assignment builds the circuit witness values.
func (o *Observation) assignment() *TransferCircuit {
	return &TransferCircuit{
		PreSender:     o.PreSender.ToBig(),
		PostSender:    o.PostSender.ToBig(),
		PreRecipient:  o.PreRecipient.ToBig(),
		PostRecipient: o.PostRecipient.ToBig(),
		PreSupply:     o.PreSupply.ToBig(),
		PostSupply:    o.PostSupply.ToBig(),
		Amount:        o.Amount.ToBig(),
		Fee:           o.Fee.ToBig(),
	}
}

// Prover compiles the transfer circuit once and proves observations against
// it. Create with NewProver; the zero value is not usable.
type Prover struct {
	cs constraint.ConstraintSystem
	pk groth16.ProvingKey
	vk groth16.VerifyingKey
}

// NewProver compiles the transfer circuit and runs Groth16 setup on BN254.
// Production deployments would replace the local setup with ceremony keys.
func NewProver() (*Prover, error) {
	cs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &TransferCircuit{})
	if err != nil {
		return nil, fmt.Errorf("compile circuit: %w", err)
	}
	pk, vk, err := groth16.Setup(cs)
	if err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}
	return &Prover{cs: cs, pk: pk, vk: vk}, nil
}

// Prove generates a proof for the observation, returning the proof and its
// public witness for Verify.
func (p *Prover) Prove(o *Observation) (groth16.Proof, witness.Witness, error) {
	full, err := frontend.NewWitness(o.assignment(), ecc.BN254.ScalarField())
	if err != nil {
		return nil, nil, fmt.Errorf("build witness: %w", err)
	}
	prf, err := groth16.Prove(p.cs, p.pk, full)
	if err != nil {
		return nil, nil, fmt.Errorf("prove: %w", err)
	}
	public, err := full.Public()
	if err != nil {
		return nil, nil, fmt.Errorf("extract public witness: %w", err)
	}
	return prf, public, nil
}

// Verify checks a proof against its public witness.
func (p *Prover) Verify(prf groth16.Proof, public witness.Witness) error {
	return groth16.Verify(prf, p.vk, public)
}
