package models

// ChallengeDefinition: static authored coding-challenge content. Loaded
// wholesale at start, immutable afterwards. ID is 1-based (authoring order);
// the progress bit for a challenge is ID-1.
type ChallengeDefinition struct {
	ID             int      `json:"id"`
	Title          string   `json:"title"`
	Story          string   `json:"story"`
	Example        string   `json:"example,omitempty"`
	Task           string   `json:"task"`
	VisualEffect   string   `json:"visual_effect"`
	NFTBadge       string   `json:"nft_badge"`
	InitialCode    string   `json:"initial_code"`
	ExpectedCode   string   `json:"-"` // exact-match alternative to Pattern
	Pattern        string   `json:"-"` // structural match rule, applied dot-matches-newline
	Hints          []string `json:"hints,omitempty"`
	SuccessMessage string   `json:"-"`
	FailureMessage string   `json:"-"`
}

// BitIndex is the challenge's position in the UserProgress bitmask (0..15).
func (c ChallengeDefinition) BitIndex() int { return c.ID - 1 }

// ModuleID is the module grouping this challenge belongs to (0..3).
func (c ChallengeDefinition) ModuleID() int { return c.BitIndex() / ChallengesPerModule }

// SolanaChallenges is the full 16-challenge curriculum, four per module.
var SolanaChallenges = []ChallengeDefinition{
	// Module 0 — Foundations
	{
		ID:           1,
		Title:        "The Genesis Program",
		Story:        "Every structure begins with a foundation. In Solana, that foundation is the program declaration itself. Like claiming your digital homestead on the blockchain frontier, you must first announce your program's identity to the world.",
		Task:         "Change the program's name to my_chyron",
		VisualEffect: "blueprint",
		NFTBadge:     "The Architect",
		InitialCode: `use anchor_lang::prelude::*;

declare_id!("11111111111111111111111111111111");

#[program]
pub mod genesis {
    use super::*;

    pub fn initialize(ctx: Context<Initialize>) -> Result<()> {
        msg!("Genesis Program Initialized!");
        Ok(())
    }
}

#[derive(Accounts)]
pub struct Initialize {}`,
		Pattern: `pub\s+mod\s+my_chyron`,
		Hints: []string{
			"Look for the #[program] declaration",
			"Change 'genesis' to 'my_chyron' after 'pub mod'",
			"Keep the rest of the structure the same",
		},
		SuccessMessage: "Your program now has a name on the frontier.",
		FailureMessage: "The program is still called 'genesis' — rename it to my_chyron.",
	},
	{
		ID:           2,
		Title:        "The First Instruction",
		Story:        "A program is useless without instructions to guide it. Just as a frontier town needs its first laws, your program needs its first meaningful instruction.",
		Task:         `Add msg!("Chyron Initialized!"); to the initialize function`,
		VisualEffect: "initialize_button",
		NFTBadge:     "First Contact",
		InitialCode: `use anchor_lang::prelude::*;

declare_id!("11111111111111111111111111111111");

#[program]
pub mod my_chyron {
    use super::*;

    pub fn initialize(ctx: Context<Initialize>) -> Result<()> {
        // Add your message here
        Ok(())
    }
}

#[derive(Accounts)]
pub struct Initialize {}`,
		Pattern: `msg!\("Chyron Initialized!"\)`,
		Hints: []string{
			"Use the msg! macro to log a message",
			"The message should be exactly 'Chyron Initialized!'",
			"Place it inside the initialize function",
		},
		SuccessMessage: "The network heard your program's first words.",
		FailureMessage: "No initialization message found — log exactly 'Chyron Initialized!'.",
	},
	{
		ID:           3,
		Title:        "State & Accounts",
		Story:        "Programs themselves don't store data. For persistence we need accounts: ledger books where your program's state lives forever on the blockchain.",
		Task:         "Define the ChyronAccount struct with a message: String field",
		VisualEffect: "data_flow",
		NFTBadge:     "State Keeper",
		InitialCode: `// ...program above...

#[derive(Accounts)]
pub struct Initialize {}

// Define your account structure here`,
		Pattern: `#\[account\].*pub struct.*ChyronAccount.*message:\s*String`,
		Hints: []string{
			"Use the #[account] attribute above a struct",
			"Name the struct 'ChyronAccount'",
			"Add a message field of type String",
		},
		SuccessMessage: "Your state now has a permanent home.",
		FailureMessage: "ChyronAccount with a message: String field not found.",
	},
	{
		ID:           4,
		Title:        "Writing to the Chain",
		Story:        "Now let's connect our instruction to our account. This is where we write our first piece of data permanently to the Solana blockchain.",
		Task:         "Add chyron_account, user and system_program to the Initialize context",
		VisualEffect: "chain_write",
		NFTBadge:     "Chain Writer",
		InitialCode: `#[derive(Accounts)]
pub struct Initialize {
    // Add the three necessary fields here
}`,
		Pattern: `#\[account\(init.*payer\s*=\s*user.*space.*\)\].*pub\s+chyron_account:\s*Account<'info,\s*ChyronAccount>.*#\[account\(mut\)\].*pub\s+user:\s*Signer<'info>.*pub\s+system_program:\s*Program<'info,\s*System>`,
		Hints: []string{
			"Use #[account(init, payer = user, space = 8 + 256)]",
			"The payer must be marked #[account(mut)]",
			"Don't forget the 'info lifetime",
		},
		SuccessMessage: "Three accounts, one context — the chain is ready for your data.",
		FailureMessage: "The Initialize context is missing one of its three accounts.",
	},

	// Module 1 — Instructions & state
	{
		ID:           5,
		Title:        "Setting the State",
		Story:        "An account without data is an empty ledger. Time to write the town's first proclamation into the chyron.",
		Task:         `Set chyron_account.message to "Hello, World!" inside initialize`,
		VisualEffect: "update_button",
		NFTBadge:     "State Modifier",
		InitialCode: `pub fn initialize(ctx: Context<Initialize>) -> Result<()> {
    msg!("Chyron Initialized!");
    // Write the first message here
    Ok(())
}`,
		Pattern: `let\s+chyron_account\s*=\s*&mut\s+ctx\.accounts\.chyron_account.*chyron_account\.message\s*=\s*"Hello, World!"\.to_string\(\)`,
		Hints: []string{
			"Take a mutable reference to ctx.accounts.chyron_account",
			"Assign the message with .to_string()",
		},
		SuccessMessage: "The chyron lights up: Hello, World!",
		FailureMessage: "The chyron is still blank — assign \"Hello, World!\" to its message.",
	},
	{
		ID:           6,
		Title:        "Creating a Custom Instruction",
		Story:        "One instruction makes a statue; two make a machine. Add an update_message instruction so the chyron can change over time.",
		Task:         "Add an update_message instruction with its UpdateMessage context",
		VisualEffect: "access_control",
		NFTBadge:     "Gatekeeper",
		InitialCode: `// Add a new instruction below initialize

#[derive(Accounts)]
pub struct Initialize { /* ... */ }`,
		Pattern: `pub fn update_message.*new_message:\s*String.*Result<\(\)>.*#\[derive\(Accounts\)\].*pub struct UpdateMessage`,
		Hints: []string{
			"The instruction takes a new_message: String argument",
			"Define a matching UpdateMessage accounts struct",
		},
		SuccessMessage: "Your program accepts new proclamations.",
		FailureMessage: "update_message instruction or its UpdateMessage context is missing.",
	},
	{
		ID:           7,
		Title:        "Access Control & Signers",
		Story:        "A town where anyone can rewrite the chyron descends into chaos. Only the rightful authority may update the message.",
		Task:         "Store an authority Pubkey on the account and constrain updates with has_one",
		VisualEffect: "pda_creation",
		NFTBadge:     "Master of Puppets",
		InitialCode: `#[account]
pub struct ChyronAccount {
    pub message: String,
    // Who owns this chyron?
}`,
		Pattern: `pub\s+authority:\s+Pubkey.*has_one\s*=\s*authority`,
		Hints: []string{
			"Add pub authority: Pubkey to ChyronAccount",
			"Use #[account(mut, has_one = authority)] on the update context",
		},
		SuccessMessage: "Only the rightful owner holds the chyron's pen now.",
		FailureMessage: "Updates are still unguarded — add the authority field and has_one constraint.",
	},
	{
		ID:           8,
		Title:        "Program Derived Addresses",
		Story:        "Some accounts belong to no wallet at all — they belong to the program itself. PDAs are the deeds the program signs with seeds instead of keys.",
		Task:         "Derive the chyron account from seeds with a stored bump",
		VisualEffect: "cpi_call",
		NFTBadge:     "The Composer",
		InitialCode: `#[derive(Accounts)]
pub struct Initialize<'info> {
    // Make chyron_account a PDA
}`,
		Pattern: `seeds\s*=\s*\[.*\].*bump`,
		Hints: []string{
			"Use seeds = [b\"chyron\", user.key().as_ref()]",
			"Anchor stores the bump for you when you ask for it",
		},
		SuccessMessage: "The program now signs its own deeds.",
		FailureMessage: "No PDA derivation found — add seeds and bump to the account constraint.",
	},

	// Module 2 — Composition & safety
	{
		ID:           9,
		Title:        "Cross-Program Invocation",
		Story:        "No program is an island. Call the Memo program from yours and leave a note on the chain that another program wrote.",
		Task:         "Build a memo instruction and invoke it",
		VisualEffect: "cpi_call",
		NFTBadge:     "The Herald",
		InitialCode: `pub fn leave_memo(ctx: Context<LeaveMemo>, note: String) -> Result<()> {
    // Invoke the memo program here
    Ok(())
}`,
		Pattern: `spl_memo::instruction::build_memo.*invoke`,
		Hints: []string{
			"Use spl_memo::instruction::build_memo to construct the instruction",
			"Pass it to invoke with the account infos",
		},
		SuccessMessage: "Your program spoke through another.",
		FailureMessage: "The memo was never built or invoked.",
	},
	{
		ID:           10,
		Title:        "Handling SOL",
		Story:        "Every toll road needs a toll booth. Charge a small fee in lamports before the chyron updates.",
		Task:         "Transfer TOLL_AMOUNT lamports via the system program",
		VisualEffect: "sol_transfer",
		NFTBadge:     "Toll Collector",
		InitialCode: `const TOLL_AMOUNT: u64 = 10_000; // lamports

pub fn pay_toll(ctx: Context<PayToll>) -> Result<()> {
    // Collect the toll here
    Ok(())
}`,
		Pattern: `system_program::transfer.*TOLL_AMOUNT`,
		Hints: []string{
			"Use system_program::transfer with a CpiContext",
			"The amount is the TOLL_AMOUNT constant",
		},
		SuccessMessage: "The toll booth is open for business.",
		FailureMessage: "No lamports changed hands — wire up the transfer.",
	},
	{
		ID:           11,
		Title:        "Custom Errors",
		Story:        "A silent failure is a lie of omission. Give your program a voice for when things go wrong.",
		Task:         "Define an ErrorCode enum and guard message length with require!",
		VisualEffect: "error_handling",
		NFTBadge:     "The Debugger",
		InitialCode: `const MAX_MESSAGE_LENGTH: usize = 256;

pub fn update_message(ctx: Context<UpdateMessage>, new_message: String) -> Result<()> {
    // Reject messages that are too long
    Ok(())
}`,
		Pattern: `#\[error_code\].*enum\s+ErrorCode.*require!.*MAX_MESSAGE_LENGTH`,
		Hints: []string{
			"Annotate an enum with #[error_code]",
			"Use require!(new_message.len() <= MAX_MESSAGE_LENGTH, ...)",
		},
		SuccessMessage: "Your program fails loudly and honestly.",
		FailureMessage: "Long messages still slip through — add the error enum and the guard.",
	},
	{
		ID:           12,
		Title:        "Emitting Events",
		Story:        "Off-chain watchers need signals, not archaeology. Emit an event each time the chyron changes so indexers can follow along.",
		Task:         "Define a MessageUpdated event and emit it from update_message",
		VisualEffect: "event_pulse",
		NFTBadge:     "Event Herald",
		InitialCode: `pub fn update_message(ctx: Context<UpdateMessage>, new_message: String) -> Result<()> {
    // Announce the change
    Ok(())
}`,
		Pattern: `#\[event\].*pub struct MessageUpdated.*emit!\(MessageUpdated`,
		Hints: []string{
			"Annotate a struct with #[event]",
			"Fire it with the emit! macro",
		},
		SuccessMessage: "The watchers on the ridge can see your signals now.",
		FailureMessage: "No event defined or emitted.",
	},

	// Module 3 — The wider ecosystem
	{
		ID:           13,
		Title:        "Reading the Clock",
		Story:        "Time on the chain comes from the Clock sysvar, not your wrist. Stamp every update with the blockchain's own notion of now.",
		Task:         "Record Clock::get() unix_timestamp on the account",
		VisualEffect: "clock_tick",
		NFTBadge:     "Timekeeper",
		InitialCode: `pub fn update_message(ctx: Context<UpdateMessage>, new_message: String) -> Result<()> {
    // Stamp the update time
    Ok(())
}`,
		Pattern: `Clock::get\(\)\?.*unix_timestamp`,
		Hints: []string{
			"Clock::get()? returns the current sysvar",
			"Store clock.unix_timestamp on the account",
		},
		SuccessMessage: "Every proclamation now bears the chain's own timestamp.",
		FailureMessage: "The updates are still timeless — read the Clock sysvar.",
	},
	{
		ID:           14,
		Title:        "Minting a Token",
		Story:        "The ranch issues its own scrip. Create a mint and put the first tokens into circulation.",
		Task:         "CPI into the token program's mint_to with the ranch mint",
		VisualEffect: "token_mint",
		NFTBadge:     "The Tokensmith",
		InitialCode: `pub fn issue_scrip(ctx: Context<IssueScrip>, amount: u64) -> Result<()> {
    // Mint the scrip here
    Ok(())
}`,
		Pattern: `token::mint_to.*MintTo`,
		Hints: []string{
			"Build a MintTo accounts struct for the CPI",
			"Call token::mint_to with a CpiContext",
		},
		SuccessMessage: "Ranch scrip enters circulation.",
		FailureMessage: "No tokens were minted — wire up the mint_to CPI.",
	},
	{
		ID:           15,
		Title:        "Closing Accounts",
		Story:        "Abandoned claims litter the frontier and rent-exempt lamports sit idle inside them. Learn to close an account and return its lamports home.",
		Task:         "Add a close_chyron instruction using the close constraint",
		VisualEffect: "account_close",
		NFTBadge:     "The Closer",
		InitialCode: `#[derive(Accounts)]
pub struct CloseChyron<'info> {
    // Close chyron_account back to the user
}`,
		Pattern: `#\[account\(mut,\s*close\s*=\s*user.*\)\]`,
		Hints: []string{
			"The close = user constraint refunds the lamports",
			"The receiving account must be mutable",
		},
		SuccessMessage: "Nothing wasted: the claim is closed, lamports returned.",
		FailureMessage: "The account lingers on — add the close constraint.",
	},
	{
		ID:           16,
		Title:        "The Trail Boss",
		Story:        "The capstone. Combine everything: a PDA chyron, guarded updates, an event, and a timestamp — one program worthy of running the ranch.",
		Task:         "Bring seeds, has_one, emit! and the Clock together in one program",
		VisualEffect: "finale",
		NFTBadge:     "Trail Boss",
		InitialCode: `// Assemble the full program below.`,
		Pattern: `seeds\s*=\s*\[.*has_one\s*=\s*authority.*emit!\(.*Clock::get\(\)`,
		Hints: []string{
			"Each piece already works on its own",
			"Order matters: constraints, then logic, then the event",
		},
		SuccessMessage: "The ranch is yours, Trail Boss.",
		FailureMessage: "The capstone still has gaps — every prior skill must appear.",
	},
}
