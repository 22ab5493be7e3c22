// Package extract turns free-form sentences into structured records by asking
// a language model for a small JSON object and memoizing the answer.
//
// [BuildPrompt] renders the instruction sent to the model. An [Extractor]
// sends it, strips markdown code fences from the reply, decodes the
// {"user", "action", "amount"} object into a [Result] and caches the outcome
// keyed by the exact input string:
//
//	ext, err := extract.New(provider)
//	result, err := ext.Extract(ctx, "张三在昨天下午两点充值了500元")
//	switch {
//	case err != nil:
//	    // the model could not be reached
//	case result == nil:
//	    // the model answered but the reply was not a JSON object
//	default:
//	    fmt.Println(result.User, result.Action, result.Amount)
//	}
package extract
