// Package pollservice implements poll orchestration inside the governance
// context.
//
// The module owns topics, their time-boxed voting sessions, the one-vote-per
// voter-per-session write path, results aggregation, and the cascading
// topic/session deletes. Session state (scheduled/open/closed) is always
// derived from the clock at call time. Business rules live in the
// application/domain layers; infrastructure stays behind ports and adapters.
package pollservice
