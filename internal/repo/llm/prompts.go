package llm

const phoneSystemPrompt = `You are a phone number extraction assistant. Extract phone numbers from conversations.`

const phonePromptFmt = `Analyze the following conversation and extract the phone number mentioned in it.
The phone number could be in various formats (10 digits, with country code, with spaces, etc.).
Return ONLY the phone number in digits (no spaces, no dashes, no plus signs).
If no phone number is found, return "NOT_FOUND".

Conversation:
%s

Phone number:`

const emailSystemPrompt = `You are an expert email extraction assistant. You can extract email addresses ` +
	`from conversations in BOTH standard format (user@example.com) and spoken/read-out format ` +
	`(e.g., 'user dot name at example dot com'). Always convert spoken formats to standard email format. ` +
	`MOST CRITICAL: if the user corrects the email address at any point, you MUST use the CORRECTED ` +
	`version, NOT the original incorrect version. Always prioritize the most recent corrected email ` +
	`address. Return only the email address in lowercase standard format.`

const emailPromptFmt = `Analyze the following conversation and extract the email address mentioned in it.

CRITICAL - MOST IMPORTANT RULE: PRIORITIZE CORRECTED EMAIL ADDRESSES
- If the user CORRECTS the email address at any point in the conversation, use the CORRECTED version
- Look for phrases like "it's actually", "it should be", "correct it to", "sorry, it's", "no, it's"
- If multiple email addresses appear, use the LAST one mentioned that was confirmed or corrected

Email addresses may be mentioned in TWO formats:
1. STANDARD FORMAT: direct email like "john.doe@gmail.com"
2. SPOKEN/READ-OUT FORMAT: spoken aloud with words instead of symbols:
   - "dot", "period" or "point" instead of "."
   - "at", "at the rate" or "at sign" instead of "@"
   - e.g. "marshall dot 25 ec at lised dot ac dot in" means "marshall.25ec@lised.ac.in"

EXTRACTION RULES:
- Convert ALL spoken formats to standard email format
- Remove extra spaces between words ("25 ec" becomes "25ec")
- Convert to lowercase
- If there are corrections, use the CORRECTED version, not the original

Return ONLY the email address in standard format (lowercase, with @ and . symbols).
If no email address is found, return "NOT_FOUND".

Conversation:
%s

Email address:`

const languagesSystemPrompt = `You are an expert language detection assistant. You can detect ANY language ` +
	`in conversations, including transliterated text (words written in English script but belonging to ` +
	`other languages). Return a JSON object with a 'languages' array containing all detected languages ` +
	`in lowercase.`

const languagesPromptFmt = `Analyze the following conversation and identify ALL languages used.
The conversation may contain:
- Multiple languages mixed together (like Tanglish, Hinglish, etc.)
- Languages written in English script/transliteration (e.g., "Vanakkam" is Tamil, "Namaste" is Hindi)
- Any world language

IMPORTANT:
- Detect languages even when words are transliterated in English letters
- Return language names in lowercase English (e.g., "tamil", "hindi", "spanish")
- If only English is used, return ["english"]
- If multiple languages are mixed, include all of them

Conversation:
%s`

const profileSystemPrompt = `You are a data extraction assistant. Extract user information from conversations ` +
	`and return valid JSON. When extracting email addresses, handle both standard format and spoken/read-out ` +
	`format, and always convert spoken formats to standard format. MOST CRITICAL: if the user corrects the ` +
	`email address at any point, use the CORRECTED version, not the original.`

const profilePromptFmt = `Analyze the following conversation and extract the user's information:
1. name: the person's full name
2. email: the person's email address

Email addresses may appear in standard format or spoken/read-out format ("dot" for ".", "at" or
"at the rate" for "@"); convert spoken formats to standard lowercase email format. If the user
corrects the email address at any point, use the CORRECTED version. If any information is not
found, use an empty string for that field.

Conversation:
%s`

const followUpSystemPrompt = `You are a follow-up detection assistant. Determine if the caller agreed to a ` +
	`follow-up call or meeting. Return a JSON object with a boolean 'follow_up' field.`

const followUpPromptFmt = `Analyze the following conversation and determine if the caller has agreed to a
follow-up call or meeting.

Look for:
- Explicit agreement to follow-up (e.g., "yes, call me back", "I'll be available", "sure, follow up")
- Agreement to schedule a call or meeting later
- Positive responses ("yes", "sure", "okay", "alright") to follow-up questions

Return true ONLY if there is clear agreement to a follow-up. If uncertain or no agreement, return false.

Conversation:
%s`

const analyticsSystemPrompt = `You are an analytics extraction assistant. Extract user analytics from ` +
	`conversations and return valid JSON with the exact fields specified.`

const analyticsPromptFmt = `Analyze the following conversation and extract analytics information about the user:
1. country: the country they're from or located in
2. intent_level: one of "TOFU" (Top of Funnel - early interest), "MOFU" (Middle of Funnel - considering),
   or "BOFU" (Bottom of Funnel - ready to enroll)

Conversation:
%s`

const budgetSystemPrompt = `You are a budget formatting assistant. Convert budget amounts to Indian number ` +
	`format with commas, always assuming yearly payment.`

const budgetPromptFmt = `Convert the following budget information to Indian number format with commas.
CRITICAL FORMAT REQUIREMENT: the output MUST ALWAYS follow this exact format: X,XX,XXX-Y,YY,YYY
(e.g., 1,90,000-2,00,000).

Rules:
- Always assume the budget is YEARLY (if mentioned as monthly, multiply by 12)
- If a range is given (e.g., "1.5 to 2 Lakhs"), convert to: 1,50,000-2,00,000
- If a single amount is given (e.g., "2 Lakhs"), convert to a range: 2,00,000-2,00,000
- Remove words like "per year", "per month", "lakhs", "rupees", "rs"

Examples:
- "1.5 - 2 Lakhs per year" becomes "1,50,000-2,00,000"
- "35,000 per month" becomes "4,20,000-4,20,000"
- "2-3 Lakhs" becomes "2,00,000-3,00,000"

Budget text: %s

Return ONLY the formatted budget:`
