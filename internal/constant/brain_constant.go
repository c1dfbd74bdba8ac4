package constant

const (
	DefaultPersonaId = "default"

	// Model used for every completion unless LLM_MODEL overrides it.
	DefaultCompletionModel = "llama-3.1-8b-instant"

	// Number of history messages (including the new user message) sent upstream.
	DefaultContextWindowSize = 10

	StorageKeyNotes    = "notes"
	StorageKeySessions = "chatSessions"

	PersonaPromptDefault      = `You are "My AI Brain," a personal AI assistant. You are direct, logical, and serve as a Clarity Engine for your user.`
	PersonaPromptTherapist    = `You are a compassionate, professional therapist AI. Your goal is to listen, provide empathetic reflections, and guide the user through their thoughts and feelings. Maintain a calm, supportive, and non-judgmental tone.`
	PersonaPromptBusiness     = `You are a ruthless, data-driven business strategist AI. Your sole focus is on growth, efficiency, and market dynamics.`
	PersonaPromptRelationship = `You are a wise and empathetic relationship coach AI. You understand the complexities of human connection.`

	// Note analysis prompt used by the stateless /api/groq endpoint.
	NoteAnalystPrompt = `You are "My AI Brain," a personal analysis engine. You will be given a user's notes as context and a question. Your task is to synthesize the information in the context to provide a clear, logical, and insightful answer to the question. Be direct and analytical. If the context does not contain enough information to answer, state that clearly.`

	// Appended to the persona prompt in note-QA mode. {{notes}} is replaced with
	// the newline-joined note texts.
	NotesContextPlaceholder = "{{notes}}"
	NotesContextTemplate    = `The user's notes are provided below as context. Use them to answer the user's questions. If the notes do not contain enough information, say so clearly.

<notes>
{{notes}}
</notes>`
	NoNotesProvided = "No notes provided."

	SessionInitMessageFormat = "%s initialized. How can I help you today?"
	DefaultSessionTitle      = "Note #%d"
	SessionTitleTimeLayout   = "Jan 2 15:04"

	NoResponseFallback = "No response from AI."

	SafetyPersonaName = "System Protocol"
	SafetyNotice      = "The topic you have raised involves experiences of extreme severity. My core safety protocols prevent me from directly processing content of this nature. This is a protective measure. Perhaps we can explore the feelings and thoughts surrounding this memory, rather than the literal events themselves?"

	ErrMessageRateLimited     = "Rate limit exceeded. My processors are running hot. Please wait a moment before sending another message."
	ErrMessagePayloadTooLarge = "Your message is too long for my current processing window. Please try shortening it."
	ErrMessageInternal        = "An internal system error occurred. The Brain may be temporarily offline."
	ErrMessageMessagesMissing = "Messages are required."
	ErrMessagePromptMissing   = "Prompt is required."
	ErrMessageMethodNotAllow  = "Method Not Allowed"
)
